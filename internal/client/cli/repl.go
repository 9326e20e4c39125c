package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasRole(roles ...models.Role) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Ping(ctx context.Context) error

	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Upvote(ctx context.Context, args []string) error
	Downvote(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Reopen(ctx context.Context, args []string) error

	Queue(ctx context.Context, args []string) error
	Analytics(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

func (a *App) hasRole(roles ...models.Role) bool {
	return a.session.HasRole(roles...)
}

// Run restores the session and starts the shell on the App's input.
func (a *App) Run(ctx context.Context) {
	a.Restore(ctx)
	printlnFn("CityReport CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func helpText(a execIface) string {
	if !a.isLoggedIn() {
		return "Available commands: register, login, ping, help, exit"
	}
	cmds := []string{
		"list [category] [status=|severity=|sort=|near=lat,lon radius=m]",
		"search <text>", "show <id>", "new",
		"upvote <id>", "downvote <id>", "verify <id> [feedback]", "reopen <id> [feedback]",
	}
	if a.hasRole(models.RoleOfficer, models.RoleAdmin) {
		cmds = append(cmds, "queue [status]")
	}
	if a.hasRole(models.RoleAdmin) {
		cmds = append(cmds, "analytics", "export <file.md>")
	}
	cmds = append(cmds, "whoami", "ping", "logout", "exit")
	return "Available commands:\n  " + strings.Join(cmds, "\n  ")
}

// runREPL reads one command per line and dispatches it. Handler errors are
// printed and the loop continues. It returns on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("cityreport %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText(a))
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "ping":
			cmdErr = a.Ping(ctx)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "new":
			cmdErr = a.New(ctx)
		case "upvote":
			cmdErr = a.Upvote(ctx, args)
		case "downvote":
			cmdErr = a.Downvote(ctx, args)
		case "verify":
			cmdErr = a.Verify(ctx, args)
		case "reopen":
			cmdErr = a.Reopen(ctx, args)
		case "queue":
			cmdErr = a.Queue(ctx, args)
		case "analytics":
			cmdErr = a.Analytics(ctx)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(UserMessage(cmdErr))
		}
	}
}
