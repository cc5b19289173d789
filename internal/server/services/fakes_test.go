package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/studenthub/internal/dbx"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
	documentsrepo "github.com/dmitrijs2005/studenthub/internal/server/repositories/documents"
	refreshtokensrepo "github.com/dmitrijs2005/studenthub/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/studenthub/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   *models.User

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	expiredN   int64
	expiredErr error
	purgedFor  string
	createdFor []string
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID string, _ string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdFor = append(f.createdFor, userID)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(context.Context, string) error { return f.delErr }

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, userID string) (int64, error) {
	f.purgedFor = userID
	return f.expiredN, f.expiredErr
}

type docKey struct{ owner, kind, id string }

type fakeDocumentsRepo struct {
	docs map[docKey]*models.Document
	err  error
}

func newFakeDocumentsRepo() *fakeDocumentsRepo {
	return &fakeDocumentsRepo{docs: map[docKey]*models.Document{}}
}

func (f *fakeDocumentsRepo) Upsert(_ context.Context, d *models.Document) error {
	if f.err != nil {
		return f.err
	}
	cp := *d
	f.docs[docKey{d.OwnerID, d.Kind, d.ID}] = &cp
	return nil
}

func (f *fakeDocumentsRepo) Delete(_ context.Context, ownerID, kind, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.docs, docKey{ownerID, kind, id})
	return nil
}

func (f *fakeDocumentsRepo) ListByKind(_ context.Context, ownerID, kind string) ([]*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Document
	for k, d := range f.docs {
		if k.owner == ownerID && k.kind == kind {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	d *fakeDocumentsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Documents(dbx.DBTX) documentsrepo.Repository         { return m.d }
