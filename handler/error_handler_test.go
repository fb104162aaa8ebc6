package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bankist/common"
	"bankist/service"

	"github.com/stretchr/testify/assert"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"auth", service.ErrAuthenticationFailed, http.StatusUnauthorized, "authentication_failed"},
		{"expired", service.ErrSessionExpired, http.StatusUnauthorized, "session_expired"},
		{"no session", service.ErrNoActiveSession, http.StatusUnauthorized, "session_expired"},
		{"audit off", service.ErrAuditDisabled, http.StatusNotFound, ""},
		{"not a number", &service.RejectionError{Kind: service.ErrLoanRejected, Reason: service.ErrInvalidNumber}, http.StatusBadRequest, "invalid_number"},
		{"receiver", &service.RejectionError{Kind: service.ErrTransferRejected, Reason: service.ErrReceiverNotFound}, http.StatusNotFound, "receiver_not_found"},
		{"funds", &service.RejectionError{Kind: service.ErrTransferRejected, Reason: service.ErrInsufficientFunds}, http.StatusUnprocessableEntity, "insufficient_funds"},
		{"collateral", &service.RejectionError{Kind: service.ErrLoanRejected, Reason: service.ErrNoQualifyingDeposit}, http.StatusUnprocessableEntity, "no_qualifying_deposit"},
		{"identity", &service.RejectionError{Kind: service.ErrCloseRejected, Reason: service.ErrIdentityMismatch}, http.StatusUnprocessableEntity, "identity_mismatch"},
		{"wrapped", fmt.Errorf("outer: %w", service.ErrSessionExpired), http.StatusUnauthorized, "session_expired"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := toAppError(tt.err, "fallback")
			assert.Equal(t, tt.status, appErr.Code)
			assert.Equal(t, tt.reason, appErr.Reason)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestErrorHandlingMiddleware(t *testing.T) {
	h := ErrorHandlingMiddleware(func(w http.ResponseWriter, r *http.Request) *common.AppError {
		return common.NewAppError(http.StatusTeapot, "short and stout", nil).WithReason("teapot")
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.JSONEq(t, `{"code":418,"message":"short and stout","reason":"teapot"}`, rr.Body.String())
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"API is healthy and running"}`, rr.Body.String())
}
