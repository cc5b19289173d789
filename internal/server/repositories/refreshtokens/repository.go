// Package refreshtokens keeps the opaque refresh tokens issued at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, valid until now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes token. Missing tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired drops the expired tokens of userID.
	DeleteExpired(ctx context.Context, userID string) (int64, error)
}
