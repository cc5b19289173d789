package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/common"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	dialOpts    []grpc.DialOption

	conn   *grpc.ClientConn
	client pb.DocumentStoreClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

// SetTokens replaces the session tokens.
func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

// Logout forgets the session tokens.
func (s *GRPCClient) Logout() {
	s.SetTokens("", "")
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	accessToken, refreshToken := s.tokens()
	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil || method == pb.DocumentStore_RefreshToken_FullMethodName {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, pb.NewStruct(map[string]*structpb.Value{
		pb.FieldRefreshToken: structpb.NewStringValue(refreshToken),
	}))
	if rerr != nil {
		return rerr
	}

	s.SetTokens(pb.String(resp, pb.FieldAccessToken), pb.String(resp, pb.FieldRefreshToken))

	accessToken, _ = s.tokens()
	return invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily; every call is bounded by timeout
// when it is positive.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, dialOpts: opts}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewDocumentStoreClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, verifier []byte) error {

	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldUsername: structpb.NewStringValue(userName),
		pb.FieldSalt:     pb.BytesValue(salt),
		pb.FieldVerifier: pb.BytesValue(verifier),
	})

	if _, err := s.client.Register(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {

	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldUsername: structpb.NewStringValue(userName),
	})

	resp, err := s.client.GetSalt(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return pb.Bytes(resp, pb.FieldSalt)
}

// Login exchanges the verifier for session tokens and returns the server
// side user id, which becomes the owner of every local record.
func (s *GRPCClient) Login(ctx context.Context, userName string, verifier []byte) (string, error) {

	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldUsername: structpb.NewStringValue(userName),
		pb.FieldVerifier: pb.BytesValue(verifier),
	})

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	s.SetTokens(pb.String(resp, pb.FieldAccessToken), pb.String(resp, pb.FieldRefreshToken))

	return pb.String(resp, pb.FieldUserID), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if pb.String(resp, pb.FieldStatus) != pb.StatusOK {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) SaveDocument(ctx context.Context, doc *pb.Document) error {
	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldDocument: structpb.NewStructValue(doc.ToStruct()),
	})
	if _, err := s.client.Save(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteDocument(ctx context.Context, kind, ownerID, id string) error {
	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldKind:    structpb.NewStringValue(kind),
		pb.FieldOwnerID: structpb.NewStringValue(ownerID),
		pb.FieldID:      structpb.NewStringValue(id),
	})
	if _, err := s.client.Delete(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) FetchDocuments(ctx context.Context, kind, ownerID string) ([]*pb.Document, error) {
	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldKind:    structpb.NewStringValue(kind),
		pb.FieldOwnerID: structpb.NewStringValue(ownerID),
	})

	resp, err := s.client.FetchAll(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	values := pb.List(resp, pb.FieldDocuments)
	docs := make([]*pb.Document, 0, len(values))
	for _, v := range values {
		d, err := pb.DocumentFromStruct(v.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// PresignSnapshot asks the server for an upload URL for a new snapshot
// object of the owner.
func (s *GRPCClient) PresignSnapshot(ctx context.Context, ownerID string) (string, string, error) {
	req := pb.NewStruct(map[string]*structpb.Value{
		pb.FieldOwnerID: structpb.NewStringValue(ownerID),
	})

	resp, err := s.client.PresignSnapshot(ctx, req)
	if err != nil {
		return "", "", s.mapError(err)
	}
	return pb.String(resp, pb.FieldKey), pb.String(resp, pb.FieldURL), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
