package services

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/logging"
	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/dmitrijs2005/dkcards/internal/repositories/cards"
	"golang.org/x/sync/singleflight"
)

// CardInput is the add-card form. All fields are stored verbatim.
type CardInput struct {
	OwnerName    string
	TaxID        string
	Number       string
	Expiry       string
	SecurityCode string
}

// Validate names the blank fields in form order.
func (in CardInput) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"owner_name", in.OwnerName},
		{"tax_id", in.TaxID},
		{"number", in.Number},
		{"expiry", in.Expiry},
		{"security_code", in.SecurityCode},
	} {
		if common.IsBlank(f.value) {
			missing = append(missing, f.name)
		}
	}
	return common.NewInvalidInputError(missing...)
}

// CardService adds and lists cards and serves the principal card, the
// first one ever created, from a cache that every successful Add
// invalidates.
type CardService struct {
	cards cards.Repository
	log   logging.Logger

	mu      sync.Mutex
	gen     uint64
	primary *models.Card
	loads   singleflight.Group
}

func NewCardService(repo cards.Repository, log logging.Logger) *CardService {
	return &CardService{cards: repo, log: log}
}

func (s *CardService) Add(ctx context.Context, in CardInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	c := &models.Card{
		OwnerName:    in.OwnerName,
		TaxID:        in.TaxID,
		Number:       in.Number,
		Expiry:       in.Expiry,
		SecurityCode: in.SecurityCode,
	}
	id, err := s.cards.Insert(ctx, c)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.gen++
	s.primary = nil
	s.mu.Unlock()

	s.log.Info(ctx, "card added", "card_id", id)
	return id, nil
}

// List returns all cards in insertion order, read fresh from the store.
func (s *CardService) List(ctx context.Context) ([]models.Card, error) {
	return s.cards.GetAll(ctx)
}

// Primary returns the first-created card, or false when there is none.
//
// A load records its result only if no Add completed while it ran, and
// loads of the same generation share one store query. Absence is not
// cached, so cards added by other store writers show up on the next call.
func (s *CardService) Primary(ctx context.Context) (models.Card, bool, error) {
	s.mu.Lock()
	if s.primary != nil {
		c := *s.primary
		s.mu.Unlock()
		return c, true, nil
	}
	gen := s.gen
	s.mu.Unlock()

	// The shared load outlives any one caller; each caller waits on its own ctx.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		c, err := s.cards.GetFirst(loadCtx)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.gen == gen {
			s.primary = &c
		}
		s.mu.Unlock()
		return c, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return models.Card{}, false, ctx.Err()
	}
	v, err := res.Val, res.Err
	if err != nil {
		return models.Card{}, false, err
	}
	if v == nil {
		return models.Card{}, false, nil
	}
	return v.(models.Card), true, nil
}
