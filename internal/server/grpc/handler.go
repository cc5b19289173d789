package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/studenthub/internal/common"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
	"github.com/dmitrijs2005/studenthub/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStatus maps service errors to gRPC codes; anything unexpected is
// logged and reported as Internal.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidRecord):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func tokensResponse(p *services.TokenPair) *structpb.Struct {
	return pb.NewStruct(map[string]*structpb.Value{
		pb.FieldAccessToken:  structpb.NewStringValue(p.AccessToken),
		pb.FieldRefreshToken: structpb.NewStringValue(p.RefreshToken),
		pb.FieldUserID:       structpb.NewStringValue(p.UserID),
	})
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {

	username := pb.String(req, pb.FieldUsername)
	salt, err := pb.Bytes(req, pb.FieldSalt)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	verifier, err := pb.Bytes(req, pb.FieldVerifier)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	user, err := s.users.Register(ctx, username, salt, verifier)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "username", username, "user_id", user.ID)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	salt, err := s.users.GetSalt(ctx, pb.String(req, pb.FieldUsername))
	if err != nil {
		return nil, s.toStatus(ctx, "get salt", err)
	}

	return pb.NewStruct(map[string]*structpb.Value{pb.FieldSalt: pb.BytesValue(salt)}), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	verifier, err := pb.Bytes(req, pb.FieldVerifier)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	tokens, err := s.users.Login(ctx, pb.String(req, pb.FieldUsername), verifier)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}

	return tokensResponse(tokens), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	tokens, err := s.users.RefreshToken(ctx, pb.String(req, pb.FieldRefreshToken))
	if err != nil {
		return nil, s.toStatus(ctx, "refresh token", err)
	}

	return tokensResponse(tokens), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return pb.NewStruct(map[string]*structpb.Value{pb.FieldStatus: structpb.NewStringValue(pb.StatusOK)}), nil
}

func (s *GRPCServer) Save(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {

	doc, err := pb.DocumentFromStruct(pb.Struct(req, pb.FieldDocument))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := authorizeOwner(ctx, doc.OwnerID); err != nil {
		return nil, err
	}

	payload, err := protojson.Marshal(doc.Payload)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	err = s.documents.Save(ctx, &models.Document{
		OwnerID:   doc.OwnerID,
		Kind:      doc.Kind,
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Deleted:   doc.Deleted,
		Payload:   payload,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "save", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {

	ownerID := pb.String(req, pb.FieldOwnerID)
	if err := authorizeOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	if err := s.documents.Delete(ctx, ownerID, pb.String(req, pb.FieldKind), pb.String(req, pb.FieldID)); err != nil {
		return nil, s.toStatus(ctx, "delete", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) FetchAll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	ownerID := pb.String(req, pb.FieldOwnerID)
	if err := authorizeOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	docs, err := s.documents.FetchAll(ctx, ownerID, pb.String(req, pb.FieldKind))
	if err != nil {
		return nil, s.toStatus(ctx, "fetch", err)
	}

	values := make([]*structpb.Value, 0, len(docs))
	for _, d := range docs {
		payload := &structpb.Struct{}
		if len(d.Payload) > 0 {
			if err := protojson.Unmarshal(d.Payload, payload); err != nil {
				return nil, s.toStatus(ctx, "decode payload", err)
			}
		}
		wire := &pb.Document{
			Kind:      d.Kind,
			ID:        d.ID,
			OwnerID:   d.OwnerID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
			Deleted:   d.Deleted,
			Payload:   payload,
		}
		values = append(values, structpb.NewStructValue(wire.ToStruct()))
	}

	return pb.NewStruct(map[string]*structpb.Value{
		pb.FieldDocuments: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}), nil
}

func (s *GRPCServer) PresignSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	ownerID := pb.String(req, pb.FieldOwnerID)
	if err := authorizeOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	key, url, err := s.snapshots.PresignPut(ctx, ownerID)
	if err != nil {
		return nil, s.toStatus(ctx, "presign snapshot", err)
	}

	return pb.NewStruct(map[string]*structpb.Value{
		pb.FieldKey: structpb.NewStringValue(key),
		pb.FieldURL: structpb.NewStringValue(url),
	}), nil
}
