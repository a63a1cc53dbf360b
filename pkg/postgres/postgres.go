package postgres

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type Config struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD" json:"-"`
	DBName   string `yaml:"dbname" envconfig:"POSTGRES_DB"`
	SSLMode  string `yaml:"sslmode" envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c *Config) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// NewPostgresDB creates a pgx pool and applies embedded goose migrations
// through the database/sql bridge.
func NewPostgresDB(ctx context.Context, cfg *Config, migrations embed.FS) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.dsn())
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.New")
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return nil, errors.Wrap(err, "ping")
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	if err := goose.Up(db, "."); err != nil {
		return nil, errors.Wrap(err, "goose.Up")
	}
	if err := db.Close(); err != nil {
		return nil, errors.Wrap(err, "close migration db")
	}
	return pool, nil
}
