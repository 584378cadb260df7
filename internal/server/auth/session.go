package auth

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/dmitrijs2005/swappool/internal/cryptox"
)

const (
	sessionIDBytes       = 16
	anonymousSecretBytes = 32
)

// DeriveSessionID maps a device secret to a stable pseudonymous identity.
// The same secret and salt always produce the same id, and the id reveals
// nothing about the secret.
func DeriveSessionID(deviceSecret, salt []byte) string {
	return hex.EncodeToString(cryptox.DeriveKey(deviceSecret, salt, sessionIDBytes))
}

// Session is what a client receives when it starts swapping.
type Session struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
}

// Issuer starts sessions and signs their tokens.
type Issuer struct {
	secret   []byte
	salt     []byte
	validity time.Duration
	now      func() time.Time
}

// NewIssuer returns an Issuer signing with secretKey. The same key salts
// the identity derivation, so rotating it also rotates every identity.
func NewIssuer(secretKey string, validity time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secretKey),
		salt:     cryptox.Fingerprint([]byte("swappool/session/" + secretKey)),
		validity: validity,
		now:      time.Now,
	}
}

// Start opens a session for deviceSecret. An empty secret yields a fresh
// one-shot identity that cannot be resumed.
func (i *Issuer) Start(deviceSecret []byte) (Session, error) {
	if len(deviceSecret) == 0 {
		random, err := common.MakeRandHexString(anonymousSecretBytes)
		if err != nil {
			return Session{}, fmt.Errorf("generate identity: %w", err)
		}
		deviceSecret = []byte(random)
	}

	userID := DeriveSessionID(deviceSecret, i.salt)
	expiresAt := i.now().Add(i.validity)

	token, err := generateToken(userID, i.secret, expiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	return Session{UserID: userID, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Verify returns the identity carried by token.
func (i *Issuer) Verify(token string) (string, error) {
	return GetUserIDFromToken(token, i.secret)
}
