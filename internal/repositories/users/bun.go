package users

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

func (r *BunRepository) Create(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NewInsert().Model(u).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create user: %w", dbx.MapError(err))
	}
	return nil
}

func (r *BunRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u := new(models.User)
	err := r.db.NewSelect().Model(u).Where("email = ?", email).Limit(1).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", dbx.MapError(err))
	}
	return u, nil
}

func (r *BunRepository) Count(ctx context.Context) (int, error) {
	n, err := r.db.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", dbx.MapError(err))
	}
	return n, nil
}
