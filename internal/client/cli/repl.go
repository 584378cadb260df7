package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	hasSession() bool
	StartSession(ctx context.Context) error
	Next(ctx context.Context, args []string) error
	SetFilter(args []string) error
	Upload(ctx context.Context, args []string) error
	Swap(ctx context.Context, args []string) error
	React(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Comments(ctx context.Context, args []string) error
	Fetch(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	SaveForever(ctx context.Context, args []string) error
	Caption(ctx context.Context, args []string) error
	NSFW(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
	Liked(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: session, next [filter], filter [sfw|all|nsfw], fetch [id], exit"
	helpSession   = "Available commands: next [filter], filter [sfw|all|nsfw], upload <file|url>, swap <file|url>, " +
		"(r)eact [id], comment [#id] <text>, comments [id], fetch [id], mine, liked, " +
		"delete [id], save [id] on|off, caption <id> [text], nsfw [id] on|off, session, exit"
)

// sessionOnly lists the commands that need a session.
var sessionOnly = map[string]bool{
	"upload": true, "swap": true, "r": true, "react": true, "comment": true, "comments": true,
	"mine": true, "liked": true, "delete": true, "save": true, "caption": true, "nsfw": true,
}

// runREPL reads commands from r and dispatches them to a until EOF or
// "exit". Handlers log their own errors. Prompts inside handlers read from
// the same reader, so the loop must not buffer on its own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("swap %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if sessionOnly[cmd] && !a.hasSession() {
			printlnFn("Start a session first: session")
			continue
		}

		switch cmd {
		case "help":
			if a.hasSession() {
				printlnFn(helpSession)
			} else {
				printlnFn(helpAnonymous)
			}

		case "session", "login":
			_ = a.StartSession(ctx)

		case "n", "next":
			_ = a.Next(ctx, args)

		case "filter":
			_ = a.SetFilter(args)

		case "upload":
			_ = a.Upload(ctx, args)

		case "swap":
			_ = a.Swap(ctx, args)

		case "r", "react":
			_ = a.React(ctx, args)

		case "comment":
			_ = a.Comment(ctx, args)

		case "comments":
			_ = a.Comments(ctx, args)

		case "fetch":
			_ = a.Fetch(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "save":
			_ = a.SaveForever(ctx, args)

		case "caption":
			_ = a.Caption(ctx, args)

		case "nsfw":
			_ = a.NSFW(ctx, args)

		case "mine":
			_ = a.Mine(ctx)

		case "liked":
			_ = a.Liked(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.userID != "" {
		s = a.userID + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// Root starts a session, the connectivity watcher and the REPL. It returns
// when the user exits.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to swapctl (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	_ = a.StartSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
