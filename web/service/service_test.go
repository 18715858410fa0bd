package service

import (
	"path/filepath"
	"testing"

	"quizbank/database"
	"quizbank/logger"

	"github.com/op/go-logging"
)

// setup opens a fresh sqlite store under t.TempDir. The store is global,
// so tests in this package must not run in parallel.
func setup(t *testing.T) {
	t.Helper()
	t.Setenv("QB_LOG_FOLDER", t.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.CloseDB(); err != nil {
			t.Logf("close db: %v", err)
		}
	})
}
