package navigation

import (
	"context"

	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/dmitrijs2005/dkcards/internal/services"
)

// ViewModel is everything a screen shows. Fields not requested by the
// transition's effects are left empty.
type ViewModel struct {
	User        *models.UserRef
	Primary     *models.Card
	Activity    []models.Transaction
	Cards       []models.Card
	FieldErrors []string
	Notice      *Notice
}

// Renderer draws a screen. The navigator only pushes to it.
type Renderer interface {
	Render(ctx context.Context, screen Screen, vm ViewModel) error
}

// Notifier shows transient notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// ActivityFeed supplies the recent transactions shown next to the
// principal card.
type ActivityFeed interface {
	Recent(ctx context.Context, card models.Card) ([]models.Transaction, error)
}

// Sessions is the part of services.SessionManager the navigator uses.
type Sessions interface {
	Login(ctx context.Context, email string, secret []byte) (models.UserRef, error)
	Logout()
	Current() (models.UserRef, bool)
}

type Registrar interface {
	Register(ctx context.Context, name, email string, secret []byte) (string, error)
}

type Cards interface {
	Add(ctx context.Context, in services.CardInput) (int64, error)
	List(ctx context.Context) ([]models.Card, error)
	Primary(ctx context.Context) (models.Card, bool, error)
}
