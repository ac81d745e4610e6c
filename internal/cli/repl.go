package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dkcards/internal/common"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	status() string
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Home(ctx context.Context) error
	List(ctx context.Context) error
	NewCard(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Prompts (with the status from a.status) and messages go to out. The loop
// exits on EOF, on "exit"/"quit" or when ctx is done.
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help           show available commands
//	  - home           principal card and recent activity
//	  - l | list       all cards
//	  - new            add a card
//	  - logout         end the session
//	  - exit | quit    leave the program
//
// Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, out io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(out, "dk [%s]> ", a.status())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: home, (l)ist, new, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "home":
			cmdErr = a.Home(ctx)

		case "l", "list", "cards":
			cmdErr = a.List(ctx)

		case "new":
			cmdErr = a.NewCard(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if reportError(out, cmdErr) {
			return
		}
	}
}

// reportError prints err for the user. It returns true when input has
// ended and the loop should stop.
func reportError(out io.Writer, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, io.EOF):
		fmt.Fprintln(out)
		return true
	case errors.Is(err, common.ErrStoreUnavailable):
		fmt.Fprintln(out, "store unavailable, please retry")
	case errors.Is(err, context.Canceled), errors.Is(err, errAppClosed):
		return true
	default:
		fmt.Fprintln(out, "error:", err)
	}
	return false
}
