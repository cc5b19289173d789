package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/common"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// memoryServer keeps documents in a map keyed by kind/owner/id and
// requires the access token on document calls.
type memoryServer struct {
	pb.UnimplementedDocumentStoreServer

	mu   sync.Mutex
	docs map[string]*structpb.Struct
}

func (s *memoryServer) authorized(ctx context.Context) error {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(common.AccessTokenHeaderName); len(v) == 0 || v[0] != "token" {
		return status.Error(codes.Unauthenticated, "missing token")
	}
	return nil
}

func (s *memoryServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return strs(pb.FieldAccessToken, "token", pb.FieldRefreshToken, "r", pb.FieldUserID, "u1"), nil
}

func (s *memoryServer) Ping(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
	return strs(pb.FieldStatus, pb.StatusOK), nil
}

func (s *memoryServer) Save(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := s.authorized(ctx); err != nil {
		return nil, err
	}
	d, err := pb.DocumentFromStruct(pb.Struct(in, pb.FieldDocument))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.Kind+"/"+d.OwnerID+"/"+d.ID] = d.ToStruct()
	return &emptypb.Empty{}, nil
}

func (s *memoryServer) Delete(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := s.authorized(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, pb.String(in, pb.FieldKind)+"/"+pb.String(in, pb.FieldOwnerID)+"/"+pb.String(in, pb.FieldID))
	return &emptypb.Empty{}, nil
}

func (s *memoryServer) FetchAll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.authorized(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := pb.String(in, pb.FieldKind) + "/" + pb.String(in, pb.FieldOwnerID) + "/"
	var values []*structpb.Value
	for k, d := range s.docs {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			values = append(values, structpb.NewStructValue(d))
		}
	}
	return pb.NewStruct(map[string]*structpb.Value{
		pb.FieldDocuments: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}), nil
}

func startBufServer(t *testing.T) (*GRPCClient, *memoryServer) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	mem := &memoryServer{docs: map[string]*structpb.Struct{}}
	pb.RegisterDocumentStoreServer(srv, mem)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", 5*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mem
}

func TestCollection_OverGRPC(t *testing.T) {
	ctx := context.Background()
	c, _ := startBufServer(t)

	require.NoError(t, c.Ping(ctx))

	tasks := NewCollection[models.Task](c)
	due := int64(1_700_000_000_000)
	rec := &models.Record[models.Task]{
		ID:        "t1",
		Payload:   models.Task{Title: "Read ch. 3", DueDate: &due, Tags: []string{"reading"}},
		CreatedAt: 1000,
		UpdatedAt: 2000,
	}

	err := tasks.Save(ctx, "u1", rec)
	require.ErrorIs(t, err, common.ErrRemoteSaveFailed)
	require.ErrorIs(t, err, ErrUnauthorized)

	userID, err := c.Login(ctx, "ann", []byte("v"))
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	require.NoError(t, tasks.Save(ctx, userID, rec))

	got, err := tasks.FetchAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "u1", got[0].OwnerID)
	assert.Equal(t, int64(2000), got[0].UpdatedAt)
	assert.Equal(t, "Read ch. 3", got[0].Payload.Title)
	require.NotNil(t, got[0].Payload.DueDate)
	assert.Equal(t, due, *got[0].Payload.DueDate)
	assert.Equal(t, []string{"reading"}, got[0].Payload.Tags)
	assert.False(t, got[0].Synced)

	classes := NewCollection[models.Class](c)
	other, err := classes.FetchAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, tasks.Delete(ctx, userID, "t1"))
	require.NoError(t, tasks.Delete(ctx, userID, "t1"))

	got, err = tasks.FetchAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type failingStore struct{ err error }

func (f failingStore) SaveDocument(context.Context, *pb.Document) error { return f.err }
func (f failingStore) DeleteDocument(context.Context, string, string, string) error {
	return f.err
}
func (f failingStore) FetchDocuments(context.Context, string, string) ([]*pb.Document, error) {
	return nil, f.err
}

func TestCollection_WrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	col := NewCollection[models.Assignment](failingStore{err: boom})

	rec := models.NewRecord(models.Assignment{Title: "Essay", DueDate: 1}, 1)

	err := col.Save(ctx, "u1", rec)
	require.ErrorIs(t, err, common.ErrRemoteSaveFailed)
	require.ErrorIs(t, err, boom)

	err = col.Delete(ctx, "u1", rec.ID)
	require.ErrorIs(t, err, common.ErrRemoteDeleteFailed)

	_, err = col.FetchAll(ctx, "u1")
	require.ErrorIs(t, err, common.ErrRemoteFetchFailed)
}

func TestDecodeDocument_RejectsOtherKind(t *testing.T) {
	_, err := DecodeDocument[models.Class](&pb.Document{Kind: "tasks", ID: "x"})
	require.Error(t, err)
}

func TestEncodeDecode_Assignment(t *testing.T) {
	rec := &models.Record[models.Assignment]{
		ID: "a1",
		Payload: models.Assignment{
			Title:    "Lab report",
			Course:   "CHEM 101",
			DueDate:  1_700_000_123_456,
			Priority: models.PriorityHigh,
		},
		CreatedAt: 1,
		UpdatedAt: 2,
		Deleted:   true,
	}

	doc, err := EncodeDocument("u1", rec)
	require.NoError(t, err)
	assert.Equal(t, "assignments", doc.Kind)
	assert.True(t, doc.Deleted)

	back, err := DecodeDocument[models.Assignment](doc)
	require.NoError(t, err)
	assert.Equal(t, rec.Payload, back.Payload)
	assert.True(t, back.Deleted)
	assert.Equal(t, "u1", back.OwnerID)
}
