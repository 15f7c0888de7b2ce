package migration

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"pinkslip/internal/shared/config"
	"pinkslip/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var embeddedScripts embed.FS

// goose keeps its dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(ctx context.Context, db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy applies the versioned SQL scripts embedded in the binary.
// Each driver has its own script directory.
type GooseStrategy struct {
	driver string
	logger logger.Interface
}

func NewGooseStrategy(driver string, log logger.Interface) *GooseStrategy {
	if driver == "" {
		driver = config.DriverSQLite
	}
	return &GooseStrategy{
		driver: driver,
		logger: log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// ScriptsDir is the script directory for the strategy's driver, relative to
// this package.
func (s *GooseStrategy) ScriptsDir() string {
	return path.Join("scripts", s.driver)
}

func (s *GooseStrategy) dialect() (string, error) {
	switch s.driver {
	case config.DriverSQLite:
		return "sqlite3", nil
	case config.DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported migration driver %q", s.driver)
	}
}

// withGoose configures goose for the embedded scripts and runs fn while
// holding the goose lock.
func (s *GooseStrategy) withGoose(fn func() error) error {
	dialect, err := s.dialect()
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embeddedScripts)
	goose.SetLogger(&gooseLogger{log: s.logger})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn()
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	s.logger.Infow("starting goose migration",
		"driver", s.driver,
		"scripts_dir", s.ScriptsDir())

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		currentVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			s.logger.Errorw("failed to get current version", "error", err)
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.UpContext(ctx, sqlDB, s.ScriptsDir()); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		for i := 0; i < steps; i++ {
			if err := goose.DownContext(ctx, sqlDB, s.ScriptsDir()); err != nil {
				s.logger.Errorw("down migration failed", "error", err)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully")
		return nil
	})
}

func (s *GooseStrategy) GetVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var version int64
	err = s.withGoose(func() error {
		v, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// Status logs every known migration with its applied state.
func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		if err := goose.StatusContext(ctx, sqlDB, s.ScriptsDir()); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// Create writes a new, empty SQL migration into dir on disk.
func (s *GooseStrategy) Create(dir, name string) error {
	dialect, err := s.dialect()
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLogger{log: s.logger})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name, "dir", dir)
	return nil
}

// AutoMigrateStrategy creates the schema straight from the gorm models.
// Tests use it where versioned scripts add nothing.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *AutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	models := AutoMigrateModels()
	s.logger.Infow("running gorm auto migrate", "models_count", len(models))
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// gooseLogger sends goose output to the application logger.
type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infow(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Errorw(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
