package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pinkslip/internal/infrastructure/config"
	"pinkslip/internal/interfaces/http/middleware"
	"pinkslip/internal/interfaces/http/routes"
	"pinkslip/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
}

// NewRouter wires every dependency of the HTTP surface.
func NewRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	container, err := NewContainer(ctx, db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{container: container}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.engine

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	routes.SetupTicketRoutes(engine, &routes.TicketRouteConfig{
		TicketHandler: c.hdlrs.ticketHandler,
		ImportHandler: c.hdlrs.importHandler,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.container.engine
}

// Shutdown releases connections held by the router's dependencies.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
