package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/navigation"
	"github.com/dmitrijs2005/dkcards/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// navigate sends ev and reports a rejection to the user. It returns false
// when the event was rejected or failed.
func (a *App) navigate(ctx context.Context, ev navigation.Event) (bool, error) {
	a.storeMu.Lock()
	if a.closed {
		a.storeMu.Unlock()
		return false, errAppClosed
	}
	tr, err := a.nav.Navigate(ctx, ev)
	a.storeMu.Unlock()
	if err != nil {
		return false, err
	}
	if tr.Rejected {
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, "Not available while logged in; use 'logout' first.")
		} else {
			fmt.Fprintln(a.out, "Please log in first.")
		}
		return false, nil
	}
	return true, nil
}

// Login moves to the login screen, prompts for credentials and submits them.
// The secret is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if ok, err := a.navigate(ctx, navigation.GoToLogin{}); !ok {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	secret, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	_, err = a.navigate(ctx, navigation.SubmitLogin{Email: email, Secret: secret})
	return err
}

// Register moves to the registration screen and submits the form.
func (a *App) Register(ctx context.Context) error {
	if ok, err := a.navigate(ctx, navigation.GoToRegister{}); !ok {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	secret, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	_, err = a.navigate(ctx, navigation.SubmitRegister{Name: name, Email: email, Secret: secret})
	return err
}

func (a *App) Home(ctx context.Context) error {
	_, err := a.navigate(ctx, navigation.GoHome{})
	return err
}

func (a *App) List(ctx context.Context) error {
	_, err := a.navigate(ctx, navigation.GoCards{})
	return err
}

// NewCard opens the add-card form and submits it.
func (a *App) NewCard(ctx context.Context) error {
	if ok, err := a.navigate(ctx, navigation.GoNew{}); !ok {
		return err
	}

	var in services.CardInput
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Owner name", &in.OwnerName},
		{"Tax ID", &in.TaxID},
		{"Card number", &in.Number},
		{"Expiry (MM/YY)", &in.Expiry},
		{"Security code", &in.SecurityCode},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	_, err := a.navigate(ctx, navigation.SubmitNewCard{Card: in})
	return err
}

func (a *App) Logout(ctx context.Context) error {
	_, err := a.navigate(ctx, navigation.Logout{})
	return err
}
