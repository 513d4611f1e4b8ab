package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/mood-diary/internal/interface/http"
	"github.com/oksasatya/mood-diary/internal/interface/middleware"
)

type MoodModule struct {
	Handler *handlers.MoodHandler
	Auth    gin.HandlerFunc
	Limiter *middleware.Limiter
}

func NewMoodModule(h *handlers.MoodHandler, auth gin.HandlerFunc, limiter *middleware.Limiter) *MoodModule {
	return &MoodModule{Handler: h, Auth: auth, Limiter: limiter}
}

func (m *MoodModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/mood")
	g.Use(m.Auth, m.Limiter.Limit(300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.POST("/", m.Handler.Create)
		g.GET("/", m.Handler.List)
		g.GET("/:date", m.Handler.Get)
		g.PUT("/:date", m.Handler.Update)
		g.DELETE("/:date", m.Handler.Delete)
	}
}
