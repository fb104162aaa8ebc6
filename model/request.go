// file: model/request.go

package model

import (
	"bytes"
	"encoding/json"
)

// NumericText carries user-typed numeric input unparsed, so the service
// boundary decides what counts as a number. It accepts both JSON strings
// and JSON numbers.
type NumericText string

func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumericText(num.String())
	return nil
}

// LoginRequest defines the payload for opening a session.
type LoginRequest struct {
	Username string      `json:"username" validate:"required"`
	Pin      NumericText `json:"pin" validate:"required"`
}

// TransferRequest moves Amount from the session account to the account named To.
type TransferRequest struct {
	To     string      `json:"to" validate:"required"`
	Amount NumericText `json:"amount" validate:"required"`
}

type LoanRequest struct {
	Amount NumericText `json:"amount" validate:"required"`
}

// CloseAccountRequest repeats the credentials of the logged-in account.
type CloseAccountRequest struct {
	Username string      `json:"username" validate:"required"`
	Pin      NumericText `json:"pin" validate:"required"`
}
