package database

import (
	"fmt"

	"proctor_backend/internal/config"
	"proctor_backend/internal/model"
	"proctor_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(logger.Log, cfg.LogLevel, cfg.SlowThreshold),
		// every foreign key is declared by hand in schema.go
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.DBName),
	)

	if !migrate {
		return db, nil
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Log.Info("Database migration completed")
	return db, nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.TestSetter{},
		&model.TestTaker{},
		&model.Invigilator{},
		&model.Test{},
		&model.Question{},
		&model.Option{},
		&model.TestAttempt{},
		&model.Answer{},
		&model.GazeData{},
	}
}

// Migrate creates tables and columns, then adds the constraints gorm cannot
// express. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, c := range constraints {
		if err := ensureConstraint(db, c); err != nil {
			return err
		}
	}
	return nil
}

// DropAll removes every table; used by integration tests.
func DropAll(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return err
		}
	}
	return nil
}
