package storage

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/models"
)

func TestStudentDeleteCascades(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewStudentStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE sc FROM schedules sc JOIN courses c ON sc.course_id = c.course_id WHERE c.student_id = ?",
	)).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM assignments WHERE student_id = ?",
	)).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM courses WHERE student_id = ?",
	)).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM students WHERE student_id = ?",
	)).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Delete(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentDeleteUnknownIDRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewStudentStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE sc FROM schedules").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM assignments").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM courses").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM students").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.Equal(t, ErrNotFound, store.Delete(99))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentDeleteCascadeFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewStudentStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE sc FROM schedules").WithArgs(1).
		WillReturnError(&mysql.MySQLError{Number: 1205, Message: "lock wait timeout"})
	mock.ExpectRollback()

	assert.Error(t, store.Delete(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentInsertDuplicateEmailIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewStudentStore(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs("Alice", "a@x.com", "hash", "user").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})

	_, err = store.Insert(&models.Student{Name: "Alice", Email: "a@x.com", Password: "hash", Role: "user"})
	assert.Equal(t, ErrConflict, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
