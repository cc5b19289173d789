package grpc

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/logging"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
	"github.com/dmitrijs2005/studenthub/internal/server/services"
)

type fakeUser struct {
	refreshResp  *services.TokenPair
	refreshErr   error
	refreshCalls int

	regResp *models.User
	regErr  error
	regSalt []byte

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error
}

func (f *fakeUser) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	f.refreshCalls++
	return f.refreshResp, f.refreshErr
}

func (f *fakeUser) Register(_ context.Context, _ string, salt []byte, _ []byte) (*models.User, error) {
	f.regSalt = salt
	return f.regResp, f.regErr
}

func (f *fakeUser) GetSalt(context.Context, string) ([]byte, error) {
	return f.saltResp, f.saltErr
}

func (f *fakeUser) Login(context.Context, string, []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

type fakeDocs struct {
	mu   sync.Mutex
	docs map[string]*models.Document
	err  error
}

func newFakeDocs() *fakeDocs { return &fakeDocs{docs: map[string]*models.Document{}} }

func docKey(owner, kind, id string) string { return owner + "/" + kind + "/" + id }

func (f *fakeDocs) Save(_ context.Context, d *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if d.Kind == "bogus" {
		return common.ErrInvalidRecord
	}
	cp := *d
	f.docs[docKey(d.OwnerID, d.Kind, d.ID)] = &cp
	return nil
}

func (f *fakeDocs) Delete(_ context.Context, ownerID, kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.docs, docKey(ownerID, kind, id))
	return nil
}

func (f *fakeDocs) FetchAll(_ context.Context, ownerID, kind string) ([]*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Document
	for _, d := range f.docs {
		if d.OwnerID == ownerID && d.Kind == kind {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSnapshots struct {
	key, url string
	err      error
}

func (f *fakeSnapshots) PresignPut(context.Context, string) (string, string, error) {
	return f.key, f.url, f.err
}

func newServer(u userSvc, d documentSvc, sn snapshotSvc) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.NopLogger{}, u, d, sn, "k")
}
