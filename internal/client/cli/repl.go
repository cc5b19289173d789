package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Complete(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Export(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, exit"
	helpLoggedIn  = `Available commands:
  add class|assignment|task
  list [today|classes|assignments|tasks] [open|week|upcoming|recent|<day>]
  complete assignment|task <id>
  delete class|assignment|task <id>
  sync, status, export, logout, exit`
)

var errNeedLogin = errors.New("please log in first")

// runREPL reads commands line by line and dispatches them until EOF, "exit"
// or "quit". Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "sh %s > ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args, out); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "help", "?":
		if a.isLoggedIn() {
			fmt.Fprintln(out, helpLoggedIn)
		} else {
			fmt.Fprintln(out, helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "status":
		return a.Status(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "add", "l", "list", "complete", "done", "delete", "rm", "sync", "export":
			return errNeedLogin
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "add":
		return a.Add(ctx, args)
	case "l", "list":
		return a.List(ctx, args)
	case "complete", "done":
		return a.Complete(ctx, args)
	case "delete", "rm":
		return a.Delete(ctx, args)
	case "sync":
		return a.Sync(ctx)
	case "export":
		return a.Export(ctx)
	}
	return fmt.Errorf("unknown command %q, type 'help'", cmd)
}
