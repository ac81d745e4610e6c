package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/logging"
)

// Transition describes what one event did.
type Transition struct {
	From     Screen
	To       Screen
	Effects  []Effect
	Notice   *Notice
	Rejected bool
}

type Option func(*Navigator)

// WithActivityFeed enables the recent-activity panel on Home.
func WithActivityFeed(f ActivityFeed) Option {
	return func(n *Navigator) { n.feed = f }
}

func WithLogger(l logging.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

type Navigator struct {
	sessions  Sessions
	registrar Registrar
	cards     Cards
	renderer  Renderer
	notifier  Notifier
	feed      ActivityFeed
	log       logging.Logger

	mu     sync.Mutex
	screen Screen
}

// New returns a Navigator on Home when sessions already holds a principal,
// on Login otherwise.
func New(sessions Sessions, registrar Registrar, cards Cards, renderer Renderer, notifier Notifier, opts ...Option) *Navigator {
	n := &Navigator{
		sessions:  sessions,
		registrar: registrar,
		cards:     cards,
		renderer:  renderer,
		notifier:  notifier,
		log:       logging.Discard(),
		screen:    Login,
	}
	for _, o := range opts {
		o(n)
	}
	if _, ok := sessions.Current(); ok {
		n.screen = Home
	}
	return n
}

// Screen returns the current screen.
func (n *Navigator) Screen() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.screen
}

// Start renders the current screen.
func (n *Navigator) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.sessions.Current(); !ok && n.screen.Protected() {
		n.screen = Login
	}
	out := outcome{to: n.screen}
	if n.screen == Home {
		out.effects = []Effect{RefreshPrimary, RefreshActivity}
	}
	return n.commit(ctx, out)
}

// outcome is a handler's decision before it is committed.
type outcome struct {
	to          Screen
	effects     []Effect
	notice      *Notice
	fieldErrors []string
	rejected    bool
}

// Navigate handles one event. Errors come only from the store, the
// renderer or ctx; in that case the returned Transition has To == From
// unless the screen was already committed, or the session had ended under a
// protected screen, which always lands on Login.
func (n *Navigator) Navigate(ctx context.Context, ev Event) (Transition, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.screen
	_, authed := n.sessions.Current()

	// The session ended while a protected screen was up.
	forced := !authed && from.Protected()
	current := from
	if forced {
		current = Login
	}

	var (
		out outcome
		err error
	)
	switch {
	case !authed && authEvent(ev):
		out, err = n.handleAnonymous(ctx, ev)
	case authed && !authEvent(ev):
		out, err = n.handleAuthenticated(ctx, ev)
	default:
		out = outcome{to: current, rejected: true}
	}
	if err != nil {
		if !forced {
			return Transition{From: from, To: from}, err
		}
		// Never leave a protected screen up for a caller with no session.
		out = outcome{to: Login, notice: ErrorNotice("session ended, please log in")}
		tr := Transition{From: from, To: Login, Notice: out.notice}
		if cerr := n.commit(ctx, out); cerr != nil {
			return tr, errors.Join(err, cerr)
		}
		return tr, err
	}

	tr := Transition{From: from, To: out.to, Effects: out.effects, Notice: out.notice, Rejected: out.rejected}
	n.log.Debug(ctx, "navigate", "event", fmt.Sprintf("%T", ev), "from", from.String(), "to", out.to.String(), "rejected", out.rejected)

	if out.rejected {
		if !forced {
			return tr, nil
		}
		out.notice = ErrorNotice("session ended, please log in")
		tr.Notice = out.notice
	}

	if err := n.commit(ctx, out); err != nil {
		return tr, err
	}
	return tr, nil
}

func (n *Navigator) handleAnonymous(ctx context.Context, ev Event) (outcome, error) {
	switch e := ev.(type) {
	case GoToLogin:
		return outcome{to: Login}, nil

	case GoToRegister:
		return outcome{to: Register}, nil

	case SubmitLogin:
		_, err := n.sessions.Login(ctx, e.Email, e.Secret)
		if errors.Is(err, common.ErrInvalidCredentials) {
			return outcome{to: Login, notice: ErrorNotice("invalid credentials")}, nil
		}
		if err != nil {
			return outcome{}, err
		}
		return outcome{to: Home, effects: []Effect{RefreshPrimary}}, nil

	case SubmitRegister:
		_, err := n.registrar.Register(ctx, e.Name, e.Email, e.Secret)
		var inv *common.InvalidInputError
		switch {
		case err == nil:
			return outcome{to: Login, notice: SuccessNotice("registration complete, please log in")}, nil
		case errors.Is(err, common.ErrDuplicateEmail):
			return outcome{to: Register, notice: ErrorNotice(fmt.Sprintf("email %s is already registered", e.Email))}, nil
		case errors.As(err, &inv):
			return outcome{to: Register, notice: ErrorNotice(inv.Error()), fieldErrors: inv.Fields}, nil
		default:
			return outcome{}, err
		}
	}
	return outcome{}, fmt.Errorf("unexpected event %T", ev)
}

func (n *Navigator) handleAuthenticated(ctx context.Context, ev Event) (outcome, error) {
	switch e := ev.(type) {
	case GoHome:
		return outcome{to: Home, effects: []Effect{RefreshPrimary, RefreshActivity}}, nil

	case GoCards:
		return outcome{to: CardList, effects: []Effect{ReloadCards}}, nil

	case GoNew:
		return outcome{to: NewCard}, nil

	case SubmitNewCard:
		_, err := n.cards.Add(ctx, e.Card)
		var inv *common.InvalidInputError
		switch {
		case err == nil:
			return outcome{to: CardList, effects: []Effect{ReloadCards}, notice: SuccessNotice("card added")}, nil
		case errors.As(err, &inv):
			return outcome{to: NewCard, notice: ErrorNotice(inv.Error()), fieldErrors: inv.Fields}, nil
		default:
			return outcome{}, err
		}

	case Logout:
		n.sessions.Logout()
		return outcome{to: Login, notice: SuccessNotice("logged out")}, nil
	}
	return outcome{}, fmt.Errorf("unexpected event %T", ev)
}

// commit makes out.to current, then loads its data and hands it to the
// notifier and renderer.
func (n *Navigator) commit(ctx context.Context, out outcome) error {
	n.screen = out.to

	vm, err := n.materialize(ctx, out)
	if err != nil {
		return err
	}
	if vm.Notice != nil {
		n.notifier.Notify(ctx, *vm.Notice)
	}
	if err := n.renderer.Render(ctx, out.to, vm); err != nil {
		return fmt.Errorf("render %s: %w", out.to, err)
	}
	return nil
}

func (n *Navigator) materialize(ctx context.Context, out outcome) (ViewModel, error) {
	vm := ViewModel{Notice: out.notice, FieldErrors: out.fieldErrors}
	if ref, ok := n.sessions.Current(); ok {
		vm.User = &ref
	}

	for _, eff := range out.effects {
		switch eff {
		case RefreshPrimary:
			c, ok, err := n.cards.Primary(ctx)
			if err != nil {
				return vm, err
			}
			if ok {
				vm.Primary = &c
			}

		case RefreshActivity:
			if n.feed == nil || vm.Primary == nil {
				continue
			}
			txs, err := n.feed.Recent(ctx, *vm.Primary)
			if err != nil {
				n.log.Warn(ctx, "activity feed failed", "card_id", vm.Primary.ID, "error", err)
				continue
			}
			vm.Activity = txs

		case ReloadCards:
			cards, err := n.cards.List(ctx)
			if err != nil {
				return vm, err
			}
			vm.Cards = cards
		}
	}
	return vm, nil
}
