package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/swappool/internal/filex"
	"github.com/dmitrijs2005/swappool/internal/netx"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
)

var errUsageUpload = errors.New("usage: upload|swap <file|url> [image|video]")

// prepareUpload turns the command arguments into a submission. Local files
// go to storage through a presigned URL first; links are submitted as is.
func (a *App) prepareUpload(ctx context.Context, args []string) (*pb.SubmitRequest, error) {
	if len(args) == 0 {
		return nil, errUsageUpload
	}
	src := args[0]

	req := &pb.SubmitRequest{OwnerDisplayName: a.displayName}

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req.MediaRef = src
		req.MediaKind = "image"
		if len(args) > 1 {
			req.MediaKind = args[1]
		}
	} else {
		m, err := filex.ReadMedia(src)
		if err != nil {
			return nil, err
		}

		callCtx, cancel := a.callCtx(ctx)
		slot, err := a.api.RequestUpload(callCtx, m.Kind)
		cancel()
		if err != nil {
			return nil, err
		}

		// no request timeout here, large videos take a while
		if err := netx.UploadToPresignedURL(ctx, slot.URL, slot.ContentType, m.Data); err != nil {
			return nil, err
		}
		log.Printf("Uploaded %s (%s)", m.FileName, m.MIME)

		req.MediaRef = slot.Ref
		req.MediaKind = m.Kind
	}

	caption, err := getSimpleText(a.reader, "Caption (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}
	req.Caption = caption

	nsfw, err := getYesNo(a.reader, "Is it NSFW?", os.Stdout)
	if err != nil {
		return nil, err
	}
	req.IsNSFW = nsfw

	return req, nil
}

// Upload adds content to the pool without asking for anything back.
func (a *App) Upload(ctx context.Context, args []string) error {
	req, err := a.prepareUpload(ctx, args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	c, err := a.api.Submit(ctx, req)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	printlnFn("Submitted", c.ID)
	return nil
}

// Swap submits content and shows what came back in exchange.
func (a *App) Swap(ctx context.Context, args []string) error {
	req, err := a.prepareUpload(ctx, args)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.Swap(ctx, &pb.SwapRequest{
		SubmitRequest: *req,
		Selection:     pb.Selection{Filter: a.filter},
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Submitted", resp.Submitted.ID)
	if resp.Received != nil {
		a.remember(resp.Received.Content)
		printlnFn("You got:")
		printView(resp.Received)
	}
	return nil
}
