package navigation

type Screen int

const (
	Login Screen = iota
	Register
	Home
	CardList
	NewCard
)

var screenNames = [...]string{
	Login:    "login",
	Register: "register",
	Home:     "home",
	CardList: "cards",
	NewCard:  "new card",
}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return "unknown"
	}
	return screenNames[s]
}

// Protected reports whether s may only be shown to an authenticated user.
func (s Screen) Protected() bool {
	return s == Home || s == CardList || s == NewCard
}

// Effect is a data refresh a transition asks for.
type Effect int

const (
	RefreshPrimary Effect = iota + 1
	// RefreshActivity loads the principal card's recent transactions. It
	// does nothing unless a feed was given with WithActivityFeed.
	RefreshActivity
	ReloadCards
)

func (e Effect) String() string {
	switch e {
	case RefreshPrimary:
		return "refresh primary"
	case RefreshActivity:
		return "refresh activity"
	case ReloadCards:
		return "reload cards"
	default:
		return "unknown"
	}
}
