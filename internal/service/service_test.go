package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/markwat1/feeding/internal/repository/sqlite"
)

// newTestDB backs the services under test with a real in-memory store, so
// validation failures and store-level failures exercise the same paths the
// server uses.
func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
