package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/logging"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
	"github.com/dmitrijs2005/studenthub/internal/server/repositories/repomanager"
)

// Collections the store accepts.
var knownKinds = map[string]bool{
	"classes":     true,
	"assignments": true,
	"tasks":       true,
}

// DocumentService is the dumb per-owner store: the last save wins
// regardless of timestamps and conflict resolution is left to clients.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *DocumentService {
	return &DocumentService{db: db, repomanager: m, logger: logger.With("module", "documents")}
}

func validateKey(ownerID, kind, id string) error {
	switch {
	case ownerID == "":
		return fmt.Errorf("%w: owner id is empty", common.ErrInvalidRecord)
	case !knownKinds[kind]:
		return fmt.Errorf("%w: unknown kind %q", common.ErrInvalidRecord, kind)
	case id == "":
		return fmt.Errorf("%w: document id is empty", common.ErrInvalidRecord)
	}
	return nil
}

// Save stores doc, replacing any previous version.
func (s *DocumentService) Save(ctx context.Context, doc *models.Document) error {
	if err := validateKey(doc.OwnerID, doc.Kind, doc.ID); err != nil {
		return err
	}
	if err := s.repomanager.Documents(s.db).Upsert(ctx, doc); err != nil {
		return fmt.Errorf("error saving document: %w", err)
	}
	s.logger.Debug(ctx, "document saved", "owner_id", doc.OwnerID, "kind", doc.Kind, "id", doc.ID, "updated_at", doc.UpdatedAt)
	return nil
}

// Delete removes a document; deleting an absent one succeeds.
func (s *DocumentService) Delete(ctx context.Context, ownerID, kind, id string) error {
	if err := validateKey(ownerID, kind, id); err != nil {
		return err
	}
	if err := s.repomanager.Documents(s.db).Delete(ctx, ownerID, kind, id); err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	s.logger.Debug(ctx, "document deleted", "owner_id", ownerID, "kind", kind, "id", id)
	return nil
}

// FetchAll returns the whole collection of the owner.
func (s *DocumentService) FetchAll(ctx context.Context, ownerID, kind string) ([]*models.Document, error) {
	if err := validateKey(ownerID, kind, "-"); err != nil {
		return nil, err
	}
	docs, err := s.repomanager.Documents(s.db).ListByKind(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("error fetching documents: %w", err)
	}
	return docs, nil
}
