package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/mood-diary/internal/container"
	handlers "github.com/oksasatya/mood-diary/internal/interface/http"
	"github.com/oksasatya/mood-diary/internal/interface/middleware"
	"github.com/oksasatya/mood-diary/internal/router/modules"
	"github.com/oksasatya/mood-diary/pkg/validation"
)

// InitModules wires handlers from the container and adds every feature module to r.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	cache := handlers.NewReadCache(c.Redis, cfg.CacheTTL, c.Logger)
	limiter := middleware.NewLimiter(c.Redis, cfg.RateLimitEnabled, c.Logger)
	authMW := middleware.Auth(c.AuthService)

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.AuthService, c.Cookies, cache, c.Logger), authMW, limiter))
	r.Add(modules.NewMoodModule(handlers.NewMoodHandler(c.MoodService, cache, c.Logger), authMW, limiter))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
}

// NewEngine builds the gin engine with global middleware and every module mounted under the root path.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r, cfg.RootPath)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
