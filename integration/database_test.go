//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a database container and returns host and mapped port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseHistory runs the full history lifecycle against the configured backend.
func exerciseHistory(t *testing.T, backend, connStr string) {
	t.Setenv("GOODNEWS_HISTORY_BACKEND", backend)
	t.Setenv("GOODNEWS_HISTORY_DB_CONNECT", connStr)

	_, err := runGoodNews(t, "history", "clear")
	require.NoError(t, err)

	_, err = runGoodNews(t, "history", "migrate")
	require.NoError(t, err)

	_, err = runGoodNews(t, "report", "--country", "italy", "--output", "json")
	require.NoError(t, err)

	out, err := runGoodNews(t, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "Total Runs: 1")
	assert.Contains(t, out, "Total Reports: 3")

	_, err = runGoodNews(t, "history", "export", "--output-file", t.TempDir()+"/history")
	require.NoError(t, err)

	_, err = runGoodNews(t, "history", "migrate", "--target-version", "0")
	require.NoError(t, err)
}

// TestHistoryWithMySQL tests the history commands with a MySQL backend.
func TestHistoryWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "goodnews",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	exerciseHistory(t, "mysql", fmt.Sprintf("root:secret123@tcp(%s:%s)/goodnews?parseTime=true", host, port))
}

// TestHistoryWithPostgres tests the history commands with a PostgreSQL backend.
func TestHistoryWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432")

	exerciseHistory(t, "postgresql", fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port))
}
