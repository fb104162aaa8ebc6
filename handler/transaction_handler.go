package handler

import (
	"net/http"

	"bankist/common"
	"bankist/model"
	"bankist/service"
)

// TransactionHandler holds dependencies for ledger-changing handlers.
type TransactionHandler struct {
	service *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// CreateTransfer godoc
// @Summary      Transfer money to another account
// @Description  Debits the logged-in account and credits the receiver. A successful transfer resets the logout countdown.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transfer body model.TransferRequest true "Receiver username and amount"
// @Success      200  {object}  model.Snapshot
// @Failure      400  {object}  common.AppError "Amount is not a number"
// @Failure      401  {object}  common.AppError "Session expired"
// @Failure      404  {object}  common.AppError "Receiver not found"
// @Failure      422  {object}  common.AppError "Rejected (invalid amount, same account, insufficient funds)"
// @Router       /api/transfers [post]
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	amount, err := service.ParseAmount(string(req.Amount))
	if err != nil {
		return toAppError(&service.RejectionError{Kind: service.ErrTransferRejected, Reason: err}, "Could not process transfer")
	}

	snap, err := h.service.Transfer(r.Context(), sess, req.To, amount)
	if err != nil {
		return toAppError(err, "Could not process transfer")
	}
	common.WriteJSON(w, http.StatusOK, snap)
	return nil
}

// RequestLoan godoc
// @Summary      Request a loan
// @Description  The amount is floored. It is granted if some movement is at least 10% of it and credited after a short delay, unless the session has ended by then.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        loan body model.LoanRequest true "Requested amount"
// @Success      202  {object}  model.PendingLoanResponse
// @Failure      400  {object}  common.AppError "Amount is not a number"
// @Failure      401  {object}  common.AppError "Session expired"
// @Failure      422  {object}  common.AppError "Rejected (invalid amount, no qualifying deposit)"
// @Router       /api/loans [post]
func (h *TransactionHandler) RequestLoan(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoanRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	amount, err := service.ParseAmount(string(req.Amount))
	if err != nil {
		return toAppError(&service.RejectionError{Kind: service.ErrLoanRejected, Reason: err}, "Could not process loan")
	}

	loan, err := h.service.RequestLoan(r.Context(), sess, amount)
	if err != nil {
		return toAppError(err, "Could not process loan")
	}
	common.WriteJSON(w, http.StatusAccepted, model.PendingLoanResponse{
		ID:     loan.ID,
		Amount: loan.Amount.String(),
		DueAt:  loan.DueAt,
	})
	return nil
}

// CloseAccount godoc
// @Summary      Close the logged-in account
// @Description  The username and pin must repeat the session's credentials. The account is removed and the session ends.
// @Tags         transactions
// @Accept       json
// @Security     BearerAuth
// @Param        credentials body model.CloseAccountRequest true "Username and pin of the logged-in account"
// @Success      204
// @Failure      401  {object}  common.AppError "Session expired"
// @Failure      422  {object}  common.AppError "Credentials do not match"
// @Router       /api/account/close [post]
func (h *TransactionHandler) CloseAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CloseAccountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.CloseAccount(r.Context(), sess, req.Username, string(req.Pin)); err != nil {
		return toAppError(err, "Could not close account")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
