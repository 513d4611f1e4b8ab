package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/mood-diary/internal/interface/middleware"
)

// DebugModule exposes expvar (including the cache counters); private networks skip the limiter.
type DebugModule struct {
	Limiter *middleware.Limiter
}

func NewDebugModule(limiter *middleware.Limiter) *DebugModule { return &DebugModule{Limiter: limiter} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := m.Limiter.Limit(120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
