package cards

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dkcards/internal/dbx"
	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	db bun.IDB
}

func NewBunRepository(db bun.IDB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Insert(ctx context.Context, c *models.Card) (int64, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NewInsert().Model(c).Returning("id").Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to insert card: %w", dbx.MapError(err))
	}
	return c.ID, nil
}

func (r *BunRepository) GetAll(ctx context.Context) ([]models.Card, error) {
	cards := make([]models.Card, 0)
	if err := r.db.NewSelect().Model(&cards).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", dbx.MapError(err))
	}
	return cards, nil
}

func (r *BunRepository) GetFirst(ctx context.Context) (models.Card, error) {
	var c models.Card
	if err := r.db.NewSelect().Model(&c).Order("id ASC").Limit(1).Scan(ctx); err != nil {
		return models.Card{}, fmt.Errorf("failed to get first card: %w", dbx.MapError(err))
	}
	return c, nil
}
