package database

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"phrase-bridge/pkg/types"
)

func newSQLiteDB(cfg Config, logger *zap.Logger) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	// The driver creates missing files; a missing file means no reference tables were provisioned.
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("sqlite database not found: %w", err)
	}

	sqldb, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := connect(db); err != nil {
		return nil, err
	}

	logger.Info("database connected successfully",
		zap.String("driver", types.DriverSQLite),
		zap.String("path", cfg.Path),
	)

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}
