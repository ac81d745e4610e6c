package navigation

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/dkcards/internal/cryptox"
	"github.com/dmitrijs2005/dkcards/internal/dbx"
	"github.com/dmitrijs2005/dkcards/internal/logging"
	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/dmitrijs2005/dkcards/internal/repositories/cards"
	"github.com/dmitrijs2005/dkcards/internal/repositories/users"
	"github.com/dmitrijs2005/dkcards/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type rendered struct {
	screen Screen
	vm     ViewModel
}

type recordingRenderer struct {
	mu    sync.Mutex
	calls []rendered
	err   error
}

func (r *recordingRenderer) Render(_ context.Context, s Screen, vm ViewModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, rendered{screen: s, vm: vm})
	return r.err
}

func (r *recordingRenderer) last(t *testing.T) rendered {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls, "nothing rendered")
	return r.calls[len(r.calls)-1]
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *recordingNotifier) Notify(_ context.Context, notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

type staticFeed struct {
	txs []models.Transaction
	err error
	got []models.Card
}

func (f *staticFeed) Recent(_ context.Context, c models.Card) ([]models.Transaction, error) {
	f.got = append(f.got, c)
	return f.txs, f.err
}

// failingCards fails every call with err.
type failingCards struct {
	err error
}

func (f *failingCards) Add(context.Context, services.CardInput) (int64, error) { return 0, f.err }
func (f *failingCards) List(context.Context) ([]models.Card, error)             { return nil, f.err }
func (f *failingCards) Primary(context.Context) (models.Card, bool, error) {
	return models.Card{}, false, f.err
}

// stubSessions is a session slot whose Login always returns err.
type stubSessions struct {
	ref *models.UserRef
	err error
}

func (s *stubSessions) Login(context.Context, string, []byte) (models.UserRef, error) {
	return models.UserRef{}, s.err
}
func (s *stubSessions) Logout() { s.ref = nil }
func (s *stubSessions) Current() (models.UserRef, bool) {
	if s.ref == nil {
		return models.UserRef{}, false
	}
	return *s.ref, true
}

type stubRegistrar struct {
	err error
}

func (s *stubRegistrar) Register(context.Context, string, string, []byte) (string, error) {
	return "", s.err
}

// fixture wires the real services over an in-memory store.
type fixture struct {
	nav      *Navigator
	sessions *services.SessionManager
	creds    *services.CredentialStore
	cards    *services.CardService
	renderer *recordingRenderer
	notifier *recordingNotifier
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, dbx.Migrate(ctx, db))

	hasher, err := cryptox.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	log := logging.Discard()
	creds := services.NewCredentialStore(users.NewBunRepository(db), hasher, log)
	sessions, err := services.NewSessionManager(creds, []byte("k"), 0, log)
	require.NoError(t, err)
	cardSvc := services.NewCardService(cards.NewBunRepository(db), log)

	f := &fixture{
		sessions: sessions,
		creds:    creds,
		cards:    cardSvc,
		renderer: &recordingRenderer{},
		notifier: &recordingNotifier{},
	}
	f.nav = New(sessions, creds, cardSvc, f.renderer, f.notifier, opts...)
	return f
}

// loggedIn registers ann@x.io and logs in through the navigator.
func (f *fixture) loggedIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.creds.Register(ctx, "Ann", "ann@x.io", []byte("pw123"))
	require.NoError(t, err)
	tr, err := f.nav.Navigate(ctx, SubmitLogin{Email: "ann@x.io", Secret: []byte("pw123")})
	require.NoError(t, err)
	require.Equal(t, Home, tr.To)
}

func card(owner string) services.CardInput {
	return services.CardInput{
		OwnerName:    owner,
		TaxID:        "111",
		Number:       "4111111111111111",
		Expiry:       "12/29",
		SecurityCode: "123",
	}
}
