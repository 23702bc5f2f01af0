package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// ConnectOptions tunes the traced pool handed to the repositories.
type ConnectOptions struct {
	DBName         string
	QueryFormatter func(query string) string
}

// Connect opens a traced Postgres pool and verifies it with a ping. The DSN
// must already carry driver parameters; this layer does not rewrite it.
func Connect(ctx context.Context, dsn string, opts ConnectOptions) (*sqlx.DB, error) {
	otelOpts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
	}
	if opts.DBName != "" {
		otelOpts = append(otelOpts, otelsql.WithDBName(opts.DBName))
	}
	if opts.QueryFormatter != nil {
		otelOpts = append(otelOpts, otelsql.WithQueryFormatter(opts.QueryFormatter))
	}

	db, err := otelsqlx.Open("postgres", dsn, otelOpts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
