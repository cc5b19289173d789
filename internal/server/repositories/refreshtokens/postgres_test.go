package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewPostgresRepository(db)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)`

	mock.ExpectExec(q).
		WithArgs("u1", "tok", fixedNow.Add(30*time.Minute)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), "u1", "tok", 30*time.Minute))

	mock.ExpectExec(q).WillReturnError(errors.New("db down"))
	require.ErrorContains(t, repo.Create(context.Background(), "u1", "tok", time.Minute), "db down")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)SELECT\s+user_id,\s*expires_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1`

	mock.ExpectQuery(q).WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at"}).AddRow("u1", fixedNow))
	rt, err := repo.Find(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", rt.UserID)
	assert.Equal(t, "tok", rt.Token)
	assert.True(t, rt.Expires.Equal(fixedNow))

	mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	_, err = repo.Find(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(q).WithArgs("x").WillReturnError(errors.New("boom"))
	_, err = repo.Find(context.Background(), "x")
	require.ErrorContains(t, err, "db error")
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1`

	mock.ExpectExec(q).WithArgs("tok").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.Delete(context.Background(), "tok"))

	mock.ExpectExec(q).WithArgs("tok").WillReturnError(errors.New("boom"))
	require.Error(t, repo.Delete(context.Background(), "tok"))
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+expires_at\s*<\s*\$2`

	mock.ExpectExec(q).WithArgs("u1", fixedNow).WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := repo.DeleteExpired(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec(q).WithArgs("u1", fixedNow).WillReturnError(errors.New("boom"))
	_, err = repo.DeleteExpired(context.Background(), "u1")
	require.Error(t, err)
}
