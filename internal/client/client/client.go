package client

import (
	"context"

	pb "github.com/dmitrijs2005/studenthub/internal/proto"
)

// Client is the transport contract the session, snapshot and sync layers
// talk to.
type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) (string, error)
	Logout()
	Ping(ctx context.Context) error
	PresignSnapshot(ctx context.Context, ownerID string) (key string, url string, err error)
	DocumentStore
}

// DocumentStore is the per-owner document collection on the server.
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc *pb.Document) error
	DeleteDocument(ctx context.Context, kind, ownerID, id string) error
	FetchDocuments(ctx context.Context, kind, ownerID string) ([]*pb.Document, error)
}
