package cli

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/swappool/internal/common"
)

// Prompt indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
	getYesNo      = GetYesNo
)

// StartSession asks for a device secret and an optional display name. An
// empty secret starts an anonymous session that cannot be renewed.
func (a *App) StartSession(ctx context.Context) error {
	secret, err := getSecret("Device secret (empty for anonymous)", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	name, err := getSimpleText(a.reader, "Display name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	sess, err := a.api.StartSession(ctx, secret)
	if err != nil {
		log.Printf("Session not started: %s", err.Error())
		return err
	}

	a.userID = sess.UserID
	a.displayName = name
	if len(secret) == 0 {
		log.Printf("Anonymous session started")
	} else {
		log.Printf("Session started")
	}
	a.setMode(ModeOnline)
	return nil
}
