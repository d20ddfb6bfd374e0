package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

// TestSweep_SQLShape pins the sweep to exactly two set-based UPDATEs: one
// marking overdue active tasks missed, one reverting missed tasks whose due
// date no longer qualifies. Completed rows must be excluded by both.
func TestSweep_SQLShape(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE `tasks` SET `is_missed`=(.+)WHERE (.*)completed = (.+) AND is_missed = (.+) AND due_date IS NOT NULL AND due_date < (.+)").
		WithArgs(true, sqlmock.AnyArg(), false, false, today).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE `tasks` SET `is_missed`=(.+)WHERE (.*)completed = (.+) AND is_missed = (.+) AND \\(due_date IS NULL OR due_date >= (.+)\\)").
		WithArgs(false, sqlmock.AnyArg(), false, true, today).
		WillReturnResult(sqlmock.NewResult(0, 2))

	missed, revived, err := repo.Sweep(today)

	require.NoError(t, err)
	require.Equal(t, int64(3), missed)
	require.Equal(t, int64(2), revived)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestSweep_FirstUpdateFails tests that a failing first pass aborts before
// the revert pass runs.
func TestSweep_FirstUpdateFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	boom := errors.New("deadlock")
	mock.ExpectExec("UPDATE `tasks` SET `is_missed`=").WillReturnError(boom)

	_, _, err := repo.Sweep(time.Now())

	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
