package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn is the prompt counterpart of printlnFn.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Menu(ctx context.Context) error
	Open(ctx context.Context, view string) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context, term string) error
	Show(ctx context.Context, ref string) error
	Register(ctx context.Context) error
	Update(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Medical(ctx context.Context, ref string) error
	Grant(ctx context.Context, ref string) error
	History(ctx context.Context, ref string) error
	Audit(ctx context.Context, term string) error
	Photo(ctx context.Context, ref string) error
	Export(ctx context.Context, kind string) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = `Available commands:
  menu                      list the views you may open
  open <view>               open dashboard, registry, medical, assistance or audit
  dashboard                 registry summary
  list [term]               list seniors, optionally filtered by name or SCID
  show <id|scid>            full senior profile
  register                  register a senior
  update <id|scid>          edit a senior's profile
  delete <id|scid>          remove a senior
  medical <id|scid>         edit a senior's health profile
  grant <id|scid>           record an assistance grant
  history <id|scid>         assistance history
  photo <id|scid>           upload a photo
  audit [term]              audit trail, optionally filtered
  export [masterlist|audit] write an XLSX export
  logout, exit`
)

// runREPL starts a simple read–eval–print loop for the registry CLI.
//
// It reads a line from reader, parses the first token as the command and the
// rest as its argument, and dispatches to methods on 'a'. Until a session is
// active only help, login and exit are accepted. Errors returned by command
// handlers are printed and the loop continues. The loop exits on EOF, on
// "exit"/"quit", or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("mapatag (%s)> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Error:", err)
			}
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		cmd = strings.ToLower(cmd)
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "login":
			report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login').")
			continue
		}

		switch cmd {
		case "logout":
			report(a.Logout(ctx))
		case "menu":
			report(a.Menu(ctx))
		case "open":
			if arg == "" {
				printlnFn("Usage: open <view>")
				continue
			}
			report(a.Open(ctx, arg))
		case "dashboard":
			report(a.Dashboard(ctx))
		case "l", "list":
			report(a.List(ctx, arg))
		case "audit":
			report(a.Audit(ctx, arg))
		case "register":
			report(a.Register(ctx))
		case "export":
			report(a.Export(ctx, arg))
		case "show", "update", "delete", "medical", "grant", "history", "photo":
			if arg == "" {
				printlnFn(fmt.Sprintf("Usage: %s <id|scid>", cmd))
				continue
			}
			report(dispatchRef(ctx, a, cmd, arg))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchRef(ctx context.Context, a execIface, cmd, ref string) error {
	switch cmd {
	case "show":
		return a.Show(ctx, ref)
	case "update":
		return a.Update(ctx, ref)
	case "delete":
		return a.Delete(ctx, ref)
	case "medical":
		return a.Medical(ctx, ref)
	case "grant":
		return a.Grant(ctx, ref)
	case "history":
		return a.History(ctx, ref)
	case "photo":
		return a.Photo(ctx, ref)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func report(err error) {
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.Is(err, common.ErrorForbidden):
		printlnFn("Access denied:", err)
	default:
		printlnFn("Error:", err)
	}
}
