package cli

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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Previous(ctx context.Context) error
	Next(ctx context.Context) error
	Goto(ctx context.Context, day string) error
	Today(ctx context.Context) error
	Search(ctx context.Context, query string) error
	SemanticSearch(ctx context.Context, query string) error
	Analyze(ctx context.Context) error
	Back() error
}

// runREPL starts a simple read–eval–print loop for the Daybook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - list           — show the entries of the day being viewed
//	  - add            — write a new entry (always filed under today)
//	  - edit           — edit an entry of the viewed day
//	  - del            — delete an entry of the viewed day
//	  - prev | next    — step one day back / forward (forward stops at today)
//	  - goto <date>    — jump to a yyyy-mm-dd day
//	  - today          — jump back to today
//	  - search <text>  — find the earliest matching entry and jump to its day
//	  - ssearch <text> — semantic search over the viewed day's entries
//	  - analyze        — summarize the viewed day with AI
//	  - back           — dismiss the current analysis
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("daybook> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, edit, del, prev, next, goto <date>, today, search <text>, ssearch <text>, analyze, back, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "del":
			_ = a.Delete(ctx)

		case "prev":
			_ = a.Previous(ctx)

		case "next":
			_ = a.Next(ctx)

		case "goto":
			if arg == "" {
				printlnFn("Usage: goto <yyyy-mm-dd>")
				continue
			}
			_ = a.Goto(ctx, arg)

		case "today":
			_ = a.Today(ctx)

		case "search":
			if arg == "" {
				printlnFn("Usage: search <text>")
				continue
			}
			_ = a.Search(ctx, arg)

		case "ssearch":
			if arg == "" {
				printlnFn("Usage: ssearch <text>")
				continue
			}
			_ = a.SemanticSearch(ctx, arg)

		case "analyze":
			_ = a.Analyze(ctx)

		case "back":
			_ = a.Back()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
