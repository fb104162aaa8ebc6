// service/auth_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Pins(t *testing.T) {
	s := NewAuthService("secret", bcrypt.MinCost, time.Hour, nil)

	hash, err := s.HashPin(1111)
	require.NoError(t, err)
	assert.NotEqual(t, "1111", hash)

	assert.True(t, s.CheckPin(hash, decimal.RequireFromString("1111")))
	assert.True(t, s.CheckPin(hash, decimal.RequireFromString("1111.000")))
	assert.False(t, s.CheckPin(hash, decimal.RequireFromString("1112")))
	assert.False(t, s.CheckPin(hash, decimal.RequireFromString("1111.1")))
	assert.False(t, s.CheckPin("", decimal.RequireFromString("1111")))
}

func TestAuthService_Tokens(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "af", "1111")

	token, expiresAt, err := f.auth.IssueToken(sess)
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().Add(time.Hour), expiresAt)

	claims, err := f.auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "af", claims.Username)
	assert.Equal(t, sess.ID(), claims.SessionID)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService("other", bcrypt.MinCost, time.Hour, f.clock)
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := f.auth.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": sess.ID()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = f.auth.ParseToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(f.clock.Now())
		s := NewAuthService("test-secret", bcrypt.MinCost, time.Hour, clock)
		clock.Advance(2 * time.Hour)
		_, err := s.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
