// Package cli is the wallet's interactive terminal front-end.
//
// It wires configuration, logging, the record store, the services and the
// navigation state machine, then runs a line-based REPL. Every command is
// turned into a navigation event; the navigator decides what is shown and
// the terminal view draws it.
//
//	Logged out: login, register, help, exit
//	Logged in:  home, (l)ist, new, logout, help, exit
//
// Store failures abort only the current command: the REPL prints
// "store unavailable, please retry" and keeps reading.
package cli
