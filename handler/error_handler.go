package handler

import (
	"errors"
	"net/http"

	"bankist/common"
	"bankist/service"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

var reasonCodes = []struct {
	err  error
	code string
}{
	{service.ErrInvalidNumber, "invalid_number"},
	{service.ErrInvalidAmount, "invalid_amount"},
	{service.ErrReceiverNotFound, "receiver_not_found"},
	{service.ErrSameAccountTransfer, "same_account"},
	{service.ErrInsufficientFunds, "insufficient_funds"},
	{service.ErrNoQualifyingDeposit, "no_qualifying_deposit"},
	{service.ErrIdentityMismatch, "identity_mismatch"},
}

func reasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return ""
}

// toAppError maps service errors onto HTTP responses.
func toAppError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		return common.NewAppError(http.StatusUnauthorized, err.Error(), err).WithReason("authentication_failed")
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrNoActiveSession):
		return common.NewAppError(http.StatusUnauthorized, "Session expired, please log in again", err).WithReason("session_expired")
	case errors.Is(err, service.ErrAuditDisabled):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrInvalidNumber):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err).WithReason(reasonCode(err))
	case errors.Is(err, service.ErrReceiverNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err).WithReason(reasonCode(err))
	case errors.Is(err, service.ErrTransferRejected), errors.Is(err, service.ErrLoanRejected), errors.Is(err, service.ErrCloseRejected):
		return common.NewAppError(http.StatusUnprocessableEntity, err.Error(), err).WithReason(reasonCode(err))
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
