package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	delete(a.seen, id)
	if a.current == id {
		a.current = ""
	}
	printlnFn("Deleted", id)
	return nil
}

// toggle runs a flag command of the form "<cmd> [id] on|off".
func (a *App) toggle(ctx context.Context, args []string, set func(context.Context, string, bool) error) error {
	if len(args) == 0 {
		err := errors.New("expected on or off")
		log.Printf("Error: %s", err.Error())
		return err
	}
	value, err := parseOnOff(args[len(args)-1])
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	id, err := a.target(args[:len(args)-1])
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := set(ctx, id, value); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	return nil
}

func (a *App) SaveForever(ctx context.Context, args []string) error {
	return a.toggle(ctx, args, func(ctx context.Context, id string, v bool) error {
		c, err := a.api.SetSaveForever(ctx, id, v)
		if err != nil {
			return err
		}
		a.remember(c)
		printContent(c)
		return nil
	})
}

func (a *App) NSFW(ctx context.Context, args []string) error {
	return a.toggle(ctx, args, func(ctx context.Context, id string, v bool) error {
		c, err := a.api.UpdateNSFW(ctx, id, v)
		if err != nil {
			return err
		}
		a.remember(c)
		printContent(c)
		return nil
	})
}

// Caption replaces the caption of an own upload. The first argument is the
// id, the rest is the caption; an empty caption is prompted for.
func (a *App) Caption(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	var caption string
	if len(args) > 1 {
		caption = strings.Join(args[1:], " ")
	} else {
		caption, err = getSimpleText(a.reader, "New caption (empty clears it)", os.Stdout)
		if err != nil {
			return err
		}
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	c, err := a.api.UpdateCaption(ctx, id, caption)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.remember(c)
	printContent(c)
	return nil
}

// Mine lists own uploads that are still in the pool, with totals.
func (a *App) Mine(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.MyUploads(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(resp.Contents) == 0 {
		printlnFn("No uploads in the pool")
	}
	for _, c := range resp.Contents {
		a.seen[c.ID] = c
		printContent(c)
	}
	if s := resp.Stats; s != nil {
		printlnFn(fmt.Sprintf("Total: %d uploads, %d views, %d likes, %d comments", s.Uploads, s.Views, s.Reactions, s.Comments))
	}
	return nil
}

func (a *App) Liked(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	items, err := a.api.Liked(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(items) == 0 {
		printlnFn("Nothing liked yet")
	}
	for _, l := range items {
		line := fmt.Sprintf("[%s] %s %s", l.ContentID, l.MediaKind, l.MediaURL)
		if l.Removed {
			line += " (removed)"
		}
		printlnFn(line)
	}
	return nil
}
