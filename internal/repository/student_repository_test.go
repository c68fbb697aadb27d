package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/srs-go-api/internal/access"
	"github.com/noah-isme/srs-go-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "name", "roll_no", "subject_id", "marks", "created_at", "updated_at", "subject_name"})
}

func TestStudentRepositoryListUnscoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := studentRows().
		AddRow("s1", "t1", "Alice", 1, "math", 95, time.Now(), time.Now(), "Math")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.id, s.owner_id, s.name, s.roll_no, s.subject_id, s.marks, s.created_at, s.updated_at, subj.name AS subject_name FROM students s JOIN subjects subj ON subj.id = s.subject_id WHERE 1=1 ORDER BY s.created_at ASC, s.id ASC")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(s.id) FROM students s JOIN subjects subj ON subj.id = s.subject_id WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), access.Scope{All: true}, models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListOwnerScopedWithSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("s.owner_id = $1")).
		WithArgs("t1", "%ali%").
		WillReturnRows(studentRows().
			AddRow("s1", "t1", "Alice", 1, "math", 95, time.Now(), time.Now(), "Math"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(s.id)")).
		WithArgs("t1", "%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), access.Scope{OwnerID: "t1"}, models.StudentFilter{Search: "Ali"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListPaginated(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 5 OFFSET 5")).
		WillReturnRows(studentRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(s.id)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	_, total, err := repo.List(context.Background(), access.Scope{All: true}, models.StudentFilter{Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), "t1", "Alice", 1, "math", 95, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{OwnerID: "t1", Name: "Alice", RollNo: 1, SubjectID: "math", Marks: 95}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET").
		WithArgs("Alice", 1, "math", 91, sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Student{ID: "s1", Name: "Alice", RollNo: 1, SubjectID: "math", Marks: 91}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
