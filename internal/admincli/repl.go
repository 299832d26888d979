// Package admincli is the operator console for the credential store: a small
// REPL for creating, checking, and removing dashboard accounts without going
// through the web UI.
package admincli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	AddUser(ctx context.Context) error
	Passwd(ctx context.Context) error
	DelUser(ctx context.Context) error
	Users(ctx context.Context) error
	Check(ctx context.Context) error
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Commands:
//   - help      — show available commands
//   - adduser   — create an account
//   - passwd    — set a new password for an account
//   - deluser   — remove an account
//   - users     — list registered usernames
//   - check     — verify a username/password pair
//   - exit|quit — leave the program
//
// Errors returned by command handlers are reported but do not stop the loop.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("riskboard> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: adduser, passwd, deluser, users, check, exit")

		case "adduser":
			err = a.AddUser(ctx)

		case "passwd":
			err = a.Passwd(ctx)

		case "deluser":
			err = a.DelUser(ctx)

		case "users":
			err = a.Users(ctx)

		case "check":
			err = a.Check(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
