package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventSessionStarted EventType = "session.started"
	EventSessionTick    EventType = "session.tick"
	EventSessionEnded   EventType = "session.ended"
	EventAccountUpdated EventType = "account.updated"
	EventLoginFailed    EventType = "login.failed"
	EventLoanScheduled  EventType = "loan.scheduled"
	EventLoanApplied    EventType = "loan.applied"
	EventLoanDiscarded  EventType = "loan.discarded"
	EventAccountClosed  EventType = "account.closed"
)

// Event describes a change in session or ledger state. Only the fields
// relevant to Type are set.
type Event struct {
	Type      EventType        `json:"type"`
	Username  string           `json:"username,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
	Remaining int              `json:"remaining"`
	Label     string           `json:"label,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Snapshot  *Snapshot        `json:"snapshot,omitempty"`
	At        time.Time        `json:"at"`
}
