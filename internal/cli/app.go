package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/dkcards/internal/config"
	"github.com/dmitrijs2005/dkcards/internal/cryptox"
	"github.com/dmitrijs2005/dkcards/internal/dbx"
	"github.com/dmitrijs2005/dkcards/internal/logging"
	"github.com/dmitrijs2005/dkcards/internal/navigation"
	"github.com/dmitrijs2005/dkcards/internal/repositories/cards"
	"github.com/dmitrijs2005/dkcards/internal/repositories/users"
	"github.com/dmitrijs2005/dkcards/internal/services"
	"github.com/uptrace/bun"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *bun.DB
	sessions *services.SessionManager
	nav      *navigation.Navigator
	reader   *bufio.Reader
	out      io.Writer

	// storeMu serializes navigation against Close.
	storeMu sync.Mutex
	closed  bool
}

var errAppClosed = errors.New("app closed")

// NewApp opens and migrates the store and wires the services behind a
// navigator that renders to out. Diagnostics go to errOut.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	log, err := logging.New(errOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, c.StoreDSN)
	if err != nil {
		log.Error(ctx, "error opening store", "error", err)
		return nil, err
	}
	if err := dbx.Migrate(ctx, db); err != nil {
		_ = db.Close()
		log.Error(ctx, "error migrating store", "error", err)
		return nil, err
	}
	log.Info(ctx, "store opened", "dialect", db.Dialect().Name().String())

	hasher, err := cryptox.NewHasher(c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	creds := services.NewCredentialStore(users.NewBunRepository(db), hasher, log)
	sessions, err := services.NewSessionManager(creds, []byte(c.SessionSecret), c.SessionTTL, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	cardSvc := services.NewCardService(cards.NewBunRepository(db), log)

	// No activity feed is wired, so Home shows the principal card only.
	view := newTerminalView(out)
	nav := navigation.New(sessions, creds, cardSvc, view, view, navigation.WithLogger(log))

	return &App{
		config:   c,
		log:      log,
		db:       db,
		sessions: sessions,
		nav:      nav,
		reader:   bufio.NewReader(in),
		out:      out,
	}, nil
}

// Run shows the first screen and serves commands until the user exits,
// input ends or ctx is cancelled. The store is closed on return, after any
// command already talking to it has finished. A REPL blocked reading input
// is left behind and stops at its next command.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.nav.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.reader, a.out)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Fprintln(a.out)
	}
	return nil
}

// Close ends the session and closes the store. It is safe to call more
// than once.
func (a *App) Close() error {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.sessions.Logout()
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) status() string {
	if ref, ok := a.sessions.Current(); ok {
		return ref.Email + " · " + a.nav.Screen().String()
	}
	return a.nav.Screen().String()
}
