// Package pgtest starts a disposable PostgreSQL container with the schema
// applied, for integration suites.
package pgtest

import (
	"context"
	"database/sql"
	"time"

	postgres_adapter "shop/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	SQL       *sql.DB
}

// Start runs postgres:15-alpine, connects through lib/pq and applies the
// migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, sqlDB, err := postgres_adapter.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres_adapter.Migrate(sqlDB); err != nil {
		_ = sqlDB.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db, SQL: sqlDB}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec(`TRUNCATE TABLE outbox_messages, order_lines, orders, cart_lines, carts, products
RESTART IDENTITY CASCADE`).Error
}

func (d *Database) Close(ctx context.Context) error {
	_ = d.SQL.Close()
	return d.Container.Terminate(ctx)
}
