package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	SetCategory(ctx context.Context, args []string) error
	Categories() error
	Summary(ctx context.Context, args []string) error
	Period(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the BankLedger CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "ledger %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: (l)ist, setcat <id> <category>, categories, summary [year month], period <year> <month>, upload <path>, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "setcat":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: setcat <id> <category>")
				continue
			}
			_ = a.SetCategory(ctx, args)

		case "categories":
			_ = a.Categories()

		case "summary":
			if len(args) != 0 && len(args) != 2 {
				fmt.Fprintln(out, "Usage: summary [year month]")
				continue
			}
			_ = a.Summary(ctx, args)

		case "period":
			if len(args) != 2 {
				fmt.Fprintln(out, "Usage: period <year> <month>")
				continue
			}
			_ = a.Period(ctx, args)

		case "upload":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
