package grpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/dmitrijs2005/studenthub/internal/common"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
	"github.com/dmitrijs2005/studenthub/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func asUser(id string) context.Context {
	return context.WithValue(context.Background(), UserIDKey, id)
}

func credentials(username string) *structpb.Struct {
	return pb.NewStruct(map[string]*structpb.Value{
		pb.FieldUsername: structpb.NewStringValue(username),
		pb.FieldSalt:     pb.BytesValue([]byte("s")),
		pb.FieldVerifier: pb.BytesValue([]byte("v")),
	})
}

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUser{}, newFakeDocs(), &fakeSnapshots{})
	resp, err := s.Ping(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if pb.String(resp, pb.FieldStatus) != pb.StatusOK {
		t.Fatalf("unexpected status: %q", pb.String(resp, pb.FieldStatus))
	}
}

func TestRegister(t *testing.T) {
	u := &fakeUser{regResp: &models.User{ID: "42"}}
	s := newServer(u, newFakeDocs(), &fakeSnapshots{})
	if _, err := s.Register(context.Background(), credentials("u")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !bytes.Equal(u.regSalt, []byte("s")) {
		t.Fatalf("salt not decoded: %q", u.regSalt)
	}

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"duplicate", common.ErrorAlreadyExists, codes.AlreadyExists},
		{"invalid", common.ErrInvalidRecord, codes.InvalidArgument},
		{"db down", errors.New("db down"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(&fakeUser{regErr: tt.err}, newFakeDocs(), &fakeSnapshots{})
			_, err := s.Register(context.Background(), credentials("u"))
			if status.Code(err) != tt.want {
				t.Fatalf("want %v, got %v", tt.want, status.Code(err))
			}
		})
	}
}

func TestRegister_BadBase64(t *testing.T) {
	s := newServer(&fakeUser{}, newFakeDocs(), &fakeSnapshots{})
	req := credentials("u")
	req.Fields[pb.FieldSalt] = structpb.NewStringValue("***")
	_, err := s.Register(context.Background(), req)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", status.Code(err))
	}
}

func TestGetSalt(t *testing.T) {
	s := newServer(&fakeUser{saltResp: []byte("SALT123")}, newFakeDocs(), &fakeSnapshots{})
	resp, err := s.GetSalt(context.Background(), credentials("u"))
	if err != nil {
		t.Fatalf("GetSalt error: %v", err)
	}
	if pb.String(resp, pb.FieldSalt) != base64.StdEncoding.EncodeToString([]byte("SALT123")) {
		t.Fatalf("unexpected salt: %q", pb.String(resp, pb.FieldSalt))
	}

	s2 := newServer(&fakeUser{saltErr: common.ErrorInternal}, newFakeDocs(), &fakeSnapshots{})
	if _, err := s2.GetSalt(context.Background(), credentials("u")); status.Code(err) != codes.Internal {
		t.Fatalf("want Internal, got %v", status.Code(err))
	}
}

func TestLogin(t *testing.T) {
	u := &fakeUser{loginResp: &services.TokenPair{UserID: "u1", AccessToken: "A", RefreshToken: "R"}}
	s := newServer(u, newFakeDocs(), &fakeSnapshots{})
	resp, err := s.Login(context.Background(), credentials("u"))
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pb.String(resp, pb.FieldAccessToken) != "A" || pb.String(resp, pb.FieldRefreshToken) != "R" || pb.String(resp, pb.FieldUserID) != "u1" {
		t.Fatalf("unexpected tokens: %v", resp)
	}

	s2 := newServer(&fakeUser{loginErr: common.ErrorUnauthorized}, newFakeDocs(), &fakeSnapshots{})
	if _, err := s2.Login(context.Background(), credentials("u")); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", status.Code(err))
	}

	s3 := newServer(&fakeUser{loginErr: errors.New("boom")}, newFakeDocs(), &fakeSnapshots{})
	if _, err := s3.Login(context.Background(), credentials("u")); status.Code(err) != codes.Internal {
		t.Fatalf("want Internal, got %v", status.Code(err))
	}
}

func TestRefreshToken(t *testing.T) {
	u := &fakeUser{refreshResp: &services.TokenPair{UserID: "u1", AccessToken: "a", RefreshToken: "r"}}
	s := newServer(u, newFakeDocs(), &fakeSnapshots{})
	req := pb.NewStruct(map[string]*structpb.Value{pb.FieldRefreshToken: structpb.NewStringValue("r0")})

	resp, err := s.RefreshToken(context.Background(), req)
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pb.String(resp, pb.FieldAccessToken) != "a" || pb.String(resp, pb.FieldRefreshToken) != "r" {
		t.Fatalf("unexpected tokens: %v", resp)
	}

	s2 := newServer(&fakeUser{refreshErr: common.ErrRefreshTokenExpired}, newFakeDocs(), &fakeSnapshots{})
	if _, err := s2.RefreshToken(context.Background(), req); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", status.Code(err))
	}

	s3 := newServer(&fakeUser{refreshErr: errors.New("oops")}, newFakeDocs(), &fakeSnapshots{})
	if _, err := s3.RefreshToken(context.Background(), req); status.Code(err) != codes.Internal {
		t.Fatalf("want Internal, got %v", status.Code(err))
	}
}

func saveRequest(owner string) *structpb.Struct {
	payload, _ := structpb.NewStruct(map[string]any{"title": "Essay", "done": false})
	doc := &pb.Document{Kind: "tasks", ID: "t1", OwnerID: owner, CreatedAt: 100, UpdatedAt: 200, Payload: payload}
	return pb.NewStruct(map[string]*structpb.Value{pb.FieldDocument: structpb.NewStructValue(doc.ToStruct())})
}

func TestSaveAndFetchAll(t *testing.T) {
	docs := newFakeDocs()
	s := newServer(&fakeUser{}, docs, &fakeSnapshots{})
	ctx := asUser("u1")

	_, err := s.Save(ctx, saveRequest("u1"))
	require.NoError(t, err)

	stored := docs.docs[docKey("u1", "tasks", "t1")]
	require.NotNil(t, stored)
	assert.Equal(t, int64(200), stored.UpdatedAt)
	assert.JSONEq(t, `{"title":"Essay","done":false}`, string(stored.Payload))

	resp, err := s.FetchAll(ctx, pb.NewStruct(map[string]*structpb.Value{
		pb.FieldKind:    structpb.NewStringValue("tasks"),
		pb.FieldOwnerID: structpb.NewStringValue("u1"),
	}))
	require.NoError(t, err)

	list := pb.List(resp, pb.FieldDocuments)
	require.Len(t, list, 1)
	got, err := pb.DocumentFromStruct(list[0].GetStructValue())
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, int64(100), got.CreatedAt)
	assert.Equal(t, "Essay", pb.String(got.Payload, "title"))
}

func TestSave_Errors(t *testing.T) {
	s := newServer(&fakeUser{}, newFakeDocs(), &fakeSnapshots{})

	_, err := s.Save(asUser("u2"), saveRequest("u1"))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.Save(asUser("u1"), pb.NewStruct(map[string]*structpb.Value{}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	req := saveRequest("u1")
	req.Fields[pb.FieldDocument].GetStructValue().Fields[pb.FieldKind] = structpb.NewStringValue("bogus")
	_, err = s.Save(asUser("u1"), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Save(context.Background(), saveRequest("u1"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	failing := newFakeDocs()
	failing.err = errors.New("db down")
	s2 := newServer(&fakeUser{}, failing, &fakeSnapshots{})
	_, err = s2.Save(asUser("u1"), saveRequest("u1"))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestDelete(t *testing.T) {
	docs := newFakeDocs()
	s := newServer(&fakeUser{}, docs, &fakeSnapshots{})
	_, err := s.Save(asUser("u1"), saveRequest("u1"))
	require.NoError(t, err)

	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldKind:    structpb.NewStringValue("tasks"),
		pb.FieldOwnerID: structpb.NewStringValue("u1"),
		pb.FieldID:      structpb.NewStringValue("t1"),
	})

	_, err = s.Delete(asUser("u2"), req)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Len(t, docs.docs, 1)

	_, err = s.Delete(asUser("u1"), req)
	require.NoError(t, err)
	assert.Empty(t, docs.docs)
}

func TestFetchAll_OtherOwnerDenied(t *testing.T) {
	s := newServer(&fakeUser{}, newFakeDocs(), &fakeSnapshots{})
	_, err := s.FetchAll(asUser("u2"), pb.NewStruct(map[string]*structpb.Value{
		pb.FieldKind:    structpb.NewStringValue("tasks"),
		pb.FieldOwnerID: structpb.NewStringValue("u1"),
	}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestPresignSnapshot(t *testing.T) {
	snaps := &fakeSnapshots{key: "snapshots/u1/x.json", url: "http://s3/x"}
	s := newServer(&fakeUser{}, newFakeDocs(), snaps)
	req := pb.NewStruct(map[string]*structpb.Value{pb.FieldOwnerID: structpb.NewStringValue("u1")})

	resp, err := s.PresignSnapshot(asUser("u1"), req)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/u1/x.json", pb.String(resp, pb.FieldKey))
	assert.Equal(t, "http://s3/x", pb.String(resp, pb.FieldURL))

	_, err = s.PresignSnapshot(asUser("u2"), req)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	snaps.err = errors.New("s3 down")
	_, err = s.PresignSnapshot(asUser("u1"), req)
	assert.Equal(t, codes.Internal, status.Code(err))
}
