package model

import "time"

// AuditRecord is the persisted form of an Event.
type AuditRecord struct {
	ID         int64     `json:"id"`
	EventType  string    `json:"event_type"`
	Username   string    `json:"username"`
	SessionID  string    `json:"session_id,omitempty"`
	Amount     *string   `json:"amount,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
