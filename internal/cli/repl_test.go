package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) status() string   { return "status" }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Home(context.Context) error     { return f.record("home") }
func (f *fakeExec) List(context.Context) error     { return f.record("list") }
func (f *fakeExec) NewCard(context.Context) error  { return f.record("new") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"",
		"home",
		"l",
		"list",
		"cards",
		"new",
		"foobar",
		"logout",
		"exit",
		"home",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, rdr(input), &out)

	assert.Equal(t, []string{"register", "login", "home", "list", "list", "list", "new", "logout"}, exec.calls)
	assert.Contains(t, out.String(), "Available commands: register, login, exit")
	assert.Contains(t, out.String(), "Available commands: home, (l)ist, new, logout, exit")
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "dk [status]> ")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, rdr("login"), &out)

	assert.Equal(t, []string{"login"}, exec.calls)
}

func TestRunREPL_StoreUnavailableKeepsRunning(t *testing.T) {
	exec := &fakeExec{err: fmt.Errorf("failed to list cards: %w", common.ErrStoreUnavailable)}
	var out bytes.Buffer
	runREPL(context.Background(), exec, rdr("list\nlist\nquit\n"), &out)

	assert.Equal(t, []string{"list", "list"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out.String(), "store unavailable, please retry"))
}

func TestRunREPL_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(ctx, exec, rdr("login\n"), &out)

	assert.Empty(t, exec.calls)
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer

	assert.False(t, reportError(&out, nil))
	assert.True(t, reportError(&out, io.EOF))
	assert.True(t, reportError(&out, context.Canceled))
	assert.True(t, reportError(&out, fmt.Errorf("login: %w", errAppClosed)))
	assert.False(t, reportError(&out, common.ErrStoreUnavailable))
	assert.False(t, reportError(&out, fmt.Errorf("render: boom")))

	assert.Contains(t, out.String(), "store unavailable, please retry")
	assert.Contains(t, out.String(), "error: render: boom")
}
