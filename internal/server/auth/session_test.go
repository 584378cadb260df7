package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSessionID(t *testing.T) {
	a := DeriveSessionID([]byte("phone-1"), []byte("salt"))
	b := DeriveSessionID([]byte("phone-1"), []byte("salt"))
	c := DeriveSessionID([]byte("phone-2"), []byte("salt"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 2*sessionIDBytes)
	assert.NotContains(t, a, "phone")
}

func TestIssuer_StartIsStablePerDevice(t *testing.T) {
	iss := NewIssuer("k", time.Hour)

	s1, err := iss.Start([]byte("device"))
	require.NoError(t, err)
	s2, err := iss.Start([]byte("device"))
	require.NoError(t, err)

	assert.Equal(t, s1.UserID, s2.UserID)

	got, err := iss.Verify(s1.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, s1.UserID, got)
}

func TestIssuer_SecretRotationChangesIdentity(t *testing.T) {
	s1, err := NewIssuer("k1", time.Hour).Start([]byte("device"))
	require.NoError(t, err)
	s2, err := NewIssuer("k2", time.Hour).Start([]byte("device"))
	require.NoError(t, err)

	assert.NotEqual(t, s1.UserID, s2.UserID)

	_, err = NewIssuer("k2", time.Hour).Verify(s1.AccessToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIssuer_AnonymousIsOneShot(t *testing.T) {
	iss := NewIssuer("k", time.Hour)

	s1, err := iss.Start(nil)
	require.NoError(t, err)
	s2, err := iss.Start(nil)
	require.NoError(t, err)

	assert.NotEmpty(t, s1.UserID)
	assert.NotEqual(t, s1.UserID, s2.UserID)
}

func TestIssuer_ExpiresAt(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer("k", 30*time.Minute)
	iss.now = func() time.Time { return now }

	s, err := iss.Start([]byte("device"))
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), s.ExpiresAt)
}
