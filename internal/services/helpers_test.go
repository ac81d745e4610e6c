package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/cryptox"
	"github.com/dmitrijs2005/dkcards/internal/dbx"
	"github.com/dmitrijs2005/dkcards/internal/logging"
	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/dmitrijs2005/dkcards/internal/repositories/cards"
	"github.com/dmitrijs2005/dkcards/internal/repositories/users"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// ---- helpers ----

func setupDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbx.Migrate(ctx, db))
	return db
}

func newHasher(t *testing.T) *cryptox.Hasher {
	t.Helper()
	h, err := cryptox.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newCredentialStore(t *testing.T, db bun.IDB) *CredentialStore {
	t.Helper()
	return NewCredentialStore(users.NewBunRepository(db), newHasher(t), logging.Discard())
}

func newCardService(db bun.IDB) *CardService {
	return NewCardService(cards.NewBunRepository(db), logging.Discard())
}

func validCard(owner string) CardInput {
	return CardInput{
		OwnerName:    owner,
		TaxID:        "111",
		Number:       "4111 1111 1111 1111",
		Expiry:       "12/29",
		SecurityCode: "123",
	}
}

// ---- fakes ----

// fakeUsers fails every call with err.
type fakeUsers struct {
	err error
}

func (f *fakeUsers) Create(context.Context, *models.User) error { return f.err }
func (f *fakeUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f *fakeUsers) Count(context.Context) (int, error) { return 0, f.err }

// countingCards wraps a repository and counts GetFirst calls. gate, when
// set, blocks GetFirst until it is closed.
type countingCards struct {
	cards.Repository

	mu       sync.Mutex
	getFirst int
	gate     chan struct{}
	entered  chan struct{}
	failWith error
}

func (c *countingCards) GetFirst(ctx context.Context) (models.Card, error) {
	c.mu.Lock()
	c.getFirst++
	gate, entered, failWith := c.gate, c.entered, c.failWith
	c.mu.Unlock()

	if entered != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}
	if failWith != nil {
		return models.Card{}, failWith
	}
	return c.Repository.GetFirst(ctx)
}

func (c *countingCards) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getFirst
}

// staleFirst answers the first GetFirst with a fabricated card once release
// is closed. Later calls go to the store.
type staleFirst struct {
	cards.Repository

	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *staleFirst) GetFirst(ctx context.Context) (models.Card, error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		s.entered <- struct{}{}
		<-s.release
		return models.Card{ID: -1, OwnerName: "stale"}, nil
	}
	return s.Repository.GetFirst(ctx)
}

var errDiskGone = common.ErrStoreUnavailable
