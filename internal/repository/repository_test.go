package repository_test

import (
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:17.6-alpine3.22"

// startPostgres runs a container with the products schema and terminates it
// when t finishes.
func startPostgres(t testing.TB) (string, error) {
	ctx := t.Context()

	container, err := postgres.Run(ctx, postgresImage,
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts("../migrations/01_products.up.sql"),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		return "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return connStr, nil
}
