package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/records"
	"github.com/dmitrijs2005/studenthub/internal/netx"
	"github.com/dmitrijs2005/studenthub/internal/timex"
)

// OwnerSource yields the owner of the current session.
type OwnerSource interface {
	OwnerID(ctx context.Context) (string, error)
}

// Presigner obtains an upload URL for a snapshot object.
type Presigner interface {
	PresignSnapshot(ctx context.Context, ownerID string) (key string, url string, err error)
}

// Snapshot is the exported state of one owner.
type Snapshot struct {
	OwnerID     string                              `json:"owner_id"`
	CreatedAt   int64                               `json:"created_at"`
	Classes     []*models.Record[models.Class]      `json:"classes"`
	Assignments []*models.Record[models.Assignment] `json:"assignments"`
	Tasks       []*models.Record[models.Task]       `json:"tasks"`
}

// SnapshotService exports every live local record as one JSON document
// uploaded to object storage through a server-issued presigned URL.
type SnapshotService struct {
	presigner   Presigner
	session     OwnerSource
	classes     records.Repository[models.Class]
	assignments records.Repository[models.Assignment]
	tasks       records.Repository[models.Task]

	upload func(ctx context.Context, url, contentType string, body []byte) error
	now    func() int64
}

func NewSnapshotService(
	presigner Presigner,
	session OwnerSource,
	classes records.Repository[models.Class],
	assignments records.Repository[models.Assignment],
	tasks records.Repository[models.Task],
) *SnapshotService {
	return &SnapshotService{
		presigner:   presigner,
		session:     session,
		classes:     classes,
		assignments: assignments,
		tasks:       tasks,
		upload:      netx.UploadToPresignedURL,
		now:         timex.NowMillis,
	}
}

// Build collects the owner's live records. Unsynced records are included.
func (s *SnapshotService) Build(ctx context.Context) (*Snapshot, error) {
	owner, err := s.session.OwnerID(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{OwnerID: owner, CreatedAt: s.now()}

	if snap.Classes, err = s.classes.ListForOwner(ctx, owner); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if snap.Assignments, err = s.assignments.ListForOwner(ctx, owner); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	if snap.Tasks, err = s.tasks.ListForOwner(ctx, owner); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return snap, nil
}

// Export uploads a fresh snapshot and returns its object key.
func (s *SnapshotService) Export(ctx context.Context) (string, error) {
	snap, err := s.Build(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key, url, err := s.presigner.PresignSnapshot(ctx, snap.OwnerID)
	if err != nil {
		return "", fmt.Errorf("presign snapshot: %w", err)
	}

	if err := s.upload(ctx, url, "application/json", body); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return key, nil
}
