package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims binds a bearer token to one login session.
type AppClaims struct {
	Username  string `json:"username"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
