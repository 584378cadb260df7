package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/swappool/internal/filex"
	"github.com/dmitrijs2005/swappool/internal/netx"
	"github.com/dmitrijs2005/swappool/internal/pool"
)

const downloadDir = "swaps"

var errNoContent = errors.New("no content selected, run next first or pass an id")

// target picks the content id from args or falls back to the last one seen.
func (a *App) target(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.current == "" {
		return "", errNoContent
	}
	return a.current, nil
}

// Next shows one item from the pool. An optional argument overrides the
// filter for this call only.
func (a *App) Next(ctx context.Context, args []string) error {
	filter := a.filter
	if len(args) > 0 {
		filter = args[0]
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	v, err := a.api.Next(ctx, filter)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.remember(v.Content)
	printView(v)
	return nil
}

// SetFilter changes the filter used by next.
func (a *App) SetFilter(args []string) error {
	if len(args) == 0 {
		printlnFn("Current filter:", a.filter)
		return nil
	}
	mode, err := pool.ParseFilterMode(args[0])
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.filter = string(mode)
	printlnFn("Filter set to", a.filter)
	return nil
}

func (a *App) React(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	r, err := a.api.React(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.remember(r.Content)
	if r.Counted {
		printlnFn("Liked, total", r.Content.ReactionCount)
	} else {
		printlnFn("Already liked")
	}
	return nil
}

// Comment posts the rest of the line as a comment on the current item, or
// on the item named by a leading "#id" argument.
func (a *App) Comment(ctx context.Context, args []string) error {
	var idArgs []string
	if len(args) > 0 && strings.HasPrefix(args[0], "#") {
		idArgs = []string{strings.TrimPrefix(args[0], "#")}
		args = args[1:]
	}
	id, err := a.target(idArgs)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	body := strings.Join(args, " ")
	if body == "" {
		body, err = getSimpleText(a.reader, "Comment", os.Stdout)
		if err != nil {
			return err
		}
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	c, err := a.api.Comment(ctx, id, body)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	printlnFn("Comment posted", c.ID)
	return nil
}

func (a *App) Comments(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	list, err := a.api.Comments(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if len(list) == 0 {
		printlnFn("No comments yet")
	}
	for _, c := range list {
		printlnFn(fmt.Sprintf("%s %s: %s", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.AuthorID, c.Body))
	}
	return nil
}

// Fetch downloads the media of a seen item into ./swaps.
func (a *App) Fetch(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	c, ok := a.seen[id]
	if !ok {
		err := fmt.Errorf("content %s was not seen in this session", id)
		log.Printf("Error: %s", err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir(downloadDir)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	name := filepath.Join(dir, c.ID+path.Ext(stripQuery(c.MediaURL)))
	f, err := os.Create(name)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	defer f.Close()

	n, err := netx.Download(ctx, c.MediaURL, f)
	if err != nil {
		os.Remove(name)
		log.Printf("Error: %s", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Saved %d bytes to %s", n, name))
	return nil
}

func stripQuery(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}
