package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"bankist/logger"
	"bankist/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService hashes pins and issues the bearer tokens that identify a session.
type AuthService struct {
	secret   []byte
	pinCost  int
	tokenTTL time.Duration
	clock    clockwork.Clock
}

func NewAuthService(secret string, pinCost int, tokenTTL time.Duration, clock clockwork.Clock) *AuthService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuthService{
		secret:   []byte(secret),
		pinCost:  pinCost,
		tokenTTL: tokenTTL,
		clock:    clock,
	}
}

// HashPin stores the canonical decimal form of pin, the same form CheckPin compares.
func (s *AuthService) HashPin(pin int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(strconv.Itoa(pin)), s.pinCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash pin")
		return "", err
	}
	return string(bytes), nil
}

// CheckPin reports whether pin is numerically equal to the hashed pin.
func (s *AuthService) CheckPin(hash string, pin decimal.Decimal) bool {
	if hash == "" || !pin.IsInteger() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin.String())) == nil
}

// IssueToken signs a token bound to the session's id.
func (s *AuthService) IssueToken(sess *Session) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := &model.AppClaims{
		Username:  sess.Username(),
		SessionID: sess.ID(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.Username(),
			ID:        sess.ID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("username", sess.Username()).Error("Failed to sign JWT")
		return "", time.Time{}, fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates the signature and expiry of a bearer token.
func (s *AuthService) ParseToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
