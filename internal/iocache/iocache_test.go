package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/covid19gng/goodnews/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetManager(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &HistoryStoreManager{}
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite file", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "history.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		store := Manager.GetHistoryStore()
		require.NotNil(t, store)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, "sqlite", status.Backend)

		CloseStores()
		_, err = os.Stat(dbPath)
		assert.NoError(t, err, "database file should exist")
	})

	t.Run("idempotent", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "history.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		first := Manager.GetHistoryStore()
		require.NoError(t, InitStores(schema.MySQLBackend, "ignored"))
		assert.Same(t, first, Manager.GetHistoryStore())

		CloseStores()
		CloseStores()
	})

	t.Run("empty backend means none", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitStores("", ""))
		status, err := Manager.GetHistoryStore().GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "none", status.Backend)
		assert.False(t, status.Connected)
		CloseStores()
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetManager(t)
		err := InitStores("redis", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported backend")
		assert.Nil(t, Manager.GetHistoryStore())
	})
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Missing file is not an error
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("sqlite requires a path", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	})

	t.Run("none is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearHistory("redis", "", ""))
	})
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{reportRunsTable, false},
		{reportLinesTable, false},
		{"_private", false},
		{"1table", true},
		{"drop table;", true},
		{"", true},
	}
	for _, tt := range tests {
		err := validateTableName(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
		} else {
			assert.NoError(t, err, tt.name)
		}
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`goodnews_report_runs`", quoteTableName(reportRunsTable, schema.MySQLBackend))
	assert.Equal(t, `"goodnews_report_runs"`, quoteTableName(reportRunsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"goodnews_report_runs"`, quoteTableName(reportRunsTable, schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?, ?", placeholders(schema.MySQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 4))
}
