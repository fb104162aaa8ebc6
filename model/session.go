package model

import "time"

// EndReason records why a session stopped being active.
type EndReason string

const (
	EndExpired  EndReason = "expired"
	EndClosed   EndReason = "closed"
	EndLogout   EndReason = "logout"
	EndReplaced EndReason = "replaced"
)

type SessionInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Remaining int       `json:"remaining"`
	Label     string    `json:"label"`
	StartedAt time.Time `json:"started_at"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Welcome   string      `json:"welcome"`
	Session   SessionInfo `json:"session"`
	Account   *Snapshot   `json:"account"`
}

type PendingLoanResponse struct {
	ID     string    `json:"id"`
	Amount string    `json:"amount"`
	DueAt  time.Time `json:"due_at"`
}
