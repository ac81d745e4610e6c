package users

import (
	"context"

	"github.com/dmitrijs2005/dkcards/internal/models"
)

type Repository interface {
	// Create inserts u. A taken email yields common.ErrDuplicate.
	Create(ctx context.Context, u *models.User) error
	// GetByEmail returns common.ErrorNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}
