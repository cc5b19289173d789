package users

import (
	"context"

	"github.com/dmitrijs2005/studenthub/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills its id. A taken username yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
