package navigation

import "github.com/dmitrijs2005/dkcards/internal/services"

// Event is a user-initiated navigation request.
type Event interface {
	isEvent()
}

type (
	GoToLogin    struct{}
	GoToRegister struct{}

	// SubmitLogin carries the login form. Secret is not retained.
	SubmitLogin struct {
		Email  string
		Secret []byte
	}

	// SubmitRegister carries the registration form. Secret is not retained.
	SubmitRegister struct {
		Name   string
		Email  string
		Secret []byte
	}

	GoHome  struct{}
	GoCards struct{}
	GoNew   struct{}

	SubmitNewCard struct {
		Card services.CardInput
	}

	Logout struct{}
)

func (GoToLogin) isEvent()      {}
func (GoToRegister) isEvent()   {}
func (SubmitLogin) isEvent()    {}
func (SubmitRegister) isEvent() {}
func (GoHome) isEvent()         {}
func (GoCards) isEvent()        {}
func (GoNew) isEvent()          {}
func (SubmitNewCard) isEvent()  {}
func (Logout) isEvent()         {}

// authEvent reports whether e is honoured only without a session.
func authEvent(e Event) bool {
	switch e.(type) {
	case GoToLogin, GoToRegister, SubmitLogin, SubmitRegister:
		return true
	default:
		return false
	}
}
