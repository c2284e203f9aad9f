package database

import (
	"database/sql"
	"fmt"

	"github.com/kelydev/apiClinica/config"
	"github.com/kelydev/apiClinica/logger"

	// Importa el driver de PostgreSQL
	_ "github.com/lib/pq"
)

// InitDB opens the connection pool shared by every handler and verifies it with a ping.
func InitDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	logger.Info("initializing postgresql database connection...")

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("PostgreSQL connection pool established (max open %d, max idle %d)", cfg.MaxOpenConns, cfg.MaxIdleConns)
	return db, nil
}
