package cards

import (
	"context"

	"github.com/dmitrijs2005/dkcards/internal/models"
)

type Repository interface {
	// Insert stores c and returns the assigned id (also written to c.ID).
	Insert(ctx context.Context, c *models.Card) (int64, error)
	// GetAll returns every card, oldest first.
	GetAll(ctx context.Context) ([]models.Card, error)
	// GetFirst returns the oldest card or common.ErrorNotFound.
	GetFirst(ctx context.Context) (models.Card, error)
}
