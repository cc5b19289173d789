// Package grpc exposes the document store over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/studenthub/internal/logging"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
	"github.com/dmitrijs2005/studenthub/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type documentSvc interface {
	Save(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, ownerID, kind, id string) error
	FetchAll(ctx context.Context, ownerID, kind string) ([]*models.Document, error)
}

type snapshotSvc interface {
	PresignPut(ctx context.Context, ownerID string) (string, string, error)
}

type GRPCServer struct {
	pb.UnimplementedDocumentStoreServer
	address   string
	users     userSvc
	documents documentSvc
	snapshots snapshotSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, ds documentSvc, ss snapshotSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
		snapshots: ss,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	pb.RegisterDocumentStoreServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully once ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
