package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/studenthub/internal/common"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"github.com/dmitrijs2005/studenthub/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

// Methods that need a valid access token.
var protectedMethods = map[string]bool{
	pb.DocumentStore_Save_FullMethodName:            true,
	pb.DocumentStore_Delete_FullMethodName:          true,
	pb.DocumentStore_FetchAll_FullMethodName:        true,
	pb.DocumentStore_PresignSnapshot_FullMethodName: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		// clients match this message to decide on a refresh
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, UserIDKey, userID), req)
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// authorizeOwner fails unless ownerID is the authenticated user.
func authorizeOwner(ctx context.Context, ownerID string) error {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing token")
	}
	if ownerID != userID {
		return status.Error(codes.PermissionDenied, "owner mismatch")
	}
	return nil
}
