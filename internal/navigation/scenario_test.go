package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletWalkthrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.nav.Start(ctx))

	_, err := f.nav.Navigate(ctx, GoToRegister{})
	require.NoError(t, err)
	tr, err := f.nav.Navigate(ctx, SubmitRegister{Name: "Ana", Email: "a@x.com", Secret: []byte("pw123")})
	require.NoError(t, err)
	require.Equal(t, Login, tr.To)

	tr, err = f.nav.Navigate(ctx, SubmitLogin{Email: "a@x.com", Secret: []byte("pw123")})
	require.NoError(t, err)
	assert.Equal(t, Home, tr.To)
	ref, ok := f.sessions.Current()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", ref.Email)

	// after a logout elsewhere a wrong secret keeps us on Login
	f.sessions.Logout()
	tr, err = f.nav.Navigate(ctx, SubmitLogin{Email: "a@x.com", Secret: []byte("wrong")})
	require.NoError(t, err)
	assert.Equal(t, Login, tr.To)
	assert.Equal(t, "invalid credentials", tr.Notice.Text)

	_, err = f.nav.Navigate(ctx, SubmitLogin{Email: "a@x.com", Secret: []byte("pw123")})
	require.NoError(t, err)

	_, err = f.nav.Navigate(ctx, GoNew{})
	require.NoError(t, err)
	tr, err = f.nav.Navigate(ctx, SubmitNewCard{Card: card("Ana")})
	require.NoError(t, err)
	assert.Equal(t, CardList, tr.To)

	all, err := f.cards.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	p, ok, err := f.cards.Primary(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, all[0], p)

	_, err = f.nav.Navigate(ctx, Logout{})
	require.NoError(t, err)
	tr, err = f.nav.Navigate(ctx, GoCards{})
	require.NoError(t, err)
	assert.True(t, tr.Rejected)
	assert.Equal(t, Login, f.nav.Screen())
}
