package database

import (
	"context"
	"regexp"
	"testing"

	"class-tracker/app/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestDeleteClassCommitsCascade(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM classes WHERE id = $1`)).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance WHERE class_id = $1`)).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM evaluation WHERE class_id = $1`)).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM assignments WHERE class_id = $1`)).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM classes WHERE id = $1`)).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.DeleteClass(context.Background(), 7, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClassRollsBackOnFailure(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM classes WHERE id = $1`)).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance WHERE class_id = $1`)).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM evaluation WHERE class_id = $1`)).
		WithArgs(int64(7)).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.DeleteClass(context.Background(), 7, 3)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClassNotOwned(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM classes WHERE id = $1`)).
		WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := store.DeleteClass(context.Background(), 7, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserUniqueViolation(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, password_hash)`)).
		WithArgs("hana", "hash").
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := store.CreateUser(context.Background(), &models.User{Username: "hana", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassStoresNullOwnerWhenUnscoped(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO classes (name, day, period, room, user_id)`)).
		WithArgs("Physics", "Friday", "3", "B2", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	class := &models.Class{Name: "Physics", Day: "Friday", Period: "3", Room: "B2"}
	require.NoError(t, store.CreateClass(context.Background(), class))
	assert.Equal(t, int64(11), class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClassNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, day, period, room, user_id FROM classes`)).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "day", "period", "room", "user_id"}))

	_, err := store.GetClass(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClassNoRows(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE classes SET name = $1`)).
		WithArgs("Art", "Monday", "1", "C", int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateClass(context.Background(), &models.Class{ID: 5, Name: "Art", Day: "Monday", Period: "1", Room: "C", OwnerID: 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAttendanceOrderClause(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY date COLLATE "C" ASC, id ASC`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "class_id", "date", "status"}).
			AddRow(1, 2, "2026-04-01", "present").
			AddRow(2, 2, "2026-04-02", "bogus"))

	records, err := store.ListAttendance(context.Background(), 2, models.Asc)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bogus", records[1].Status)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY date COLLATE "C" DESC, id DESC`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "class_id", "date", "status"}))

	_, err = store.ListAttendance(context.Background(), 2, models.Desc)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAssignmentsModes(t *testing.T) {
	store, mock := newMock(t)
	cols := []string{"id", "class_id", "title", "deadline", "submitted", "note"}

	mock.ExpectQuery(regexp.QuoteMeta(`submitted = false ORDER BY deadline COLLATE "C" ASC, id ASC`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, 4, "essay", "2026-05-01", false, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE class_id = $1 ORDER BY id ASC`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 4, "quiz", "2026-04-01", true, "done"))

	pending, err := store.ListAssignments(context.Background(), 4, models.ModeUnsubmitted)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "", pending[0].Note)

	all, err := store.ListAssignments(context.Background(), 4, models.ModeAll)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Submitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleAssignment(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE assignments SET submitted = NOT submitted`)).
		WithArgs(int64(8), int64(4), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"submitted"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE assignments SET submitted = NOT submitted`)).
		WithArgs(int64(8), int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"submitted"}))

	submitted, err := store.ToggleAssignment(context.Background(), 4, 8, 1)
	require.NoError(t, err)
	assert.True(t, submitted)

	_, err = store.ToggleAssignment(context.Background(), 5, 8, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEvaluationScopedByClass(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM evaluation`)).
		WithArgs(int64(6), int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteEvaluation(context.Background(), 2, 6, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range migrations {
		mock.ExpectExec(`CREATE (TABLE|INDEX) IF NOT EXISTS`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, RunMigrations(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
