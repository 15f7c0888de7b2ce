package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pinkslip/internal/infrastructure/cache"
	"pinkslip/internal/infrastructure/config"
	"pinkslip/internal/shared/logger"
)

// Container holds the infrastructure, repositories, use cases and handlers
// of the HTTP server. Shutdown releases what NewContainer opened.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	importLock      cache.ImportLock
	closeImportLock func() error

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	shutdownOnce sync.Once
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - import lock, repositories
	lock, closeLock, err := cache.NewImportLock(ctx, &cfg.Redis, log.Named("importlock"))
	if err != nil {
		return nil, fmt.Errorf("failed to set up import lock: %w", err)
	}
	c.importLock = lock
	c.closeImportLock = closeLock
	c.initRepositories()

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers
	if err := c.initHandlers(); err != nil {
		_ = closeLock()
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	return c, nil
}

// Shutdown releases the redis connection behind the import lock.
// It is safe to call more than once.
func (c *Container) Shutdown() {
	c.shutdownOnce.Do(func() {
		if c.closeImportLock == nil {
			return
		}
		if err := c.closeImportLock(); err != nil {
			c.log.Warnw("failed to close import lock", "error", err)
		}
	})
}
