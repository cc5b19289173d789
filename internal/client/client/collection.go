package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/common"
	pb "github.com/dmitrijs2005/studenthub/internal/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Collection is the typed remote view of one record kind.
type Collection[P models.Payload] struct {
	store DocumentStore
	kind  models.Kind
}

func NewCollection[P models.Payload](store DocumentStore) *Collection[P] {
	var p P
	return &Collection[P]{store: store, kind: p.Kind()}
}

// Save overwrites the remote document with rec.
func (c *Collection[P]) Save(ctx context.Context, ownerID string, rec *models.Record[P]) error {
	doc, err := EncodeDocument(ownerID, rec)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRemoteSaveFailed, err)
	}
	if err := c.store.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("%w: %s/%s: %w", common.ErrRemoteSaveFailed, c.kind, rec.ID, err)
	}
	return nil
}

// Delete removes the remote document. Deleting an absent id succeeds.
func (c *Collection[P]) Delete(ctx context.Context, ownerID string, id string) error {
	if err := c.store.DeleteDocument(ctx, c.kind.String(), ownerID, id); err != nil {
		return fmt.Errorf("%w: %s/%s: %w", common.ErrRemoteDeleteFailed, c.kind, id, err)
	}
	return nil
}

// FetchAll returns every remote record of the owner for this kind.
func (c *Collection[P]) FetchAll(ctx context.Context, ownerID string) ([]*models.Record[P], error) {
	docs, err := c.store.FetchDocuments(ctx, c.kind.String(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrRemoteFetchFailed, c.kind, err)
	}

	out := make([]*models.Record[P], 0, len(docs))
	for _, d := range docs {
		rec, err := DecodeDocument[P](d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrRemoteFetchFailed, c.kind, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// EncodeDocument converts a record into its wire form.
func EncodeDocument[P models.Payload](ownerID string, rec *models.Record[P]) (*pb.Document, error) {
	raw, err := json.Marshal(rec.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return &pb.Document{
		Kind:      rec.Kind().String(),
		ID:        rec.ID,
		OwnerID:   ownerID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Deleted:   rec.Deleted,
		Payload:   payload,
	}, nil
}

// DecodeDocument converts a wire document back into a record. The result
// is not marked synced; that is the caller's decision.
func DecodeDocument[P models.Payload](d *pb.Document) (*models.Record[P], error) {
	var p P
	if d.Kind != p.Kind().String() {
		return nil, fmt.Errorf("document %s has kind %q, want %q", d.ID, d.Kind, p.Kind())
	}

	raw, err := json.Marshal(d.Payload.AsMap())
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payload of %s: %w", d.ID, err)
	}

	return &models.Record[P]{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Payload:   p,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Deleted:   d.Deleted,
	}, nil
}
