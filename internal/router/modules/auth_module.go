package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/mood-diary/internal/interface/http"
	"github.com/oksasatya/mood-diary/internal/interface/middleware"
)

// AuthModule serves /auth: register, login and refresh are public and limited per IP,
// the rest requires the access cookie and is limited per user.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
	Limiter *middleware.Limiter
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc, limiter *middleware.Limiter) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Limiter: limiter}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")

	loginLimiter := m.Limiter.Limit(10, time.Minute, middleware.KeyByIPAndPath(), nil)
	registerLimiter := m.Limiter.Limit(5, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := m.Limiter.Limit(60, time.Minute, middleware.KeyByIPAndPath(), nil)

	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	g.POST("/logout", m.Handler.Logout)

	auth := g.Group("")
	auth.Use(m.Auth, m.Limiter.Limit(120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/validate", m.Handler.Validate)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/password", m.Handler.ChangePassword)
	}
}
