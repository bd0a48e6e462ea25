package service_test

import (
	"testing"
	"time"

	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/testhelpers"
)

var fixedNow = time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newStore(t *testing.T) *database.GormDocumentStore {
	t.Helper()
	return database.NewDocumentStore(testhelpers.SetupSQLiteDatabase(t))
}

func float(v float64) *float64 { return &v }
