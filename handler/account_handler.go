package handler

import (
	"net/http"
	"strconv"

	"bankist/common"
	"bankist/logger"
	"bankist/service"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// GetAccount godoc
// @Summary      Show the logged-in account
// @Description  Movements, dates and the derived summary. With sort=true movements are ordered by amount, ascending.
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Param        sort query bool false "Order movements by amount"
// @Success      200  {object}  model.Snapshot
// @Failure      400  {object}  common.AppError "Invalid sort flag"
// @Failure      401  {object}  common.AppError "Session expired"
// @Router       /api/account [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	sorted := false
	if raw := r.URL.Query().Get("sort"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid sort flag", err)
		}
		sorted = v
	}

	logger.Log.WithFields(logrus.Fields{
		"username": sess.Username(),
		"sorted":   sorted,
	}).Debug("Account view requested")

	snap, err := h.service.Snapshot(sess, sorted)
	if err != nil {
		return toAppError(err, "Could not read account")
	}
	common.WriteJSON(w, http.StatusOK, snap)
	return nil
}

// ListActivity godoc
// @Summary      List recorded account activity
// @Description  Audit trail of the logged-in account, newest first. Only available when auditing is enabled.
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum number of records (default and cap 50)"
// @Success      200  {array}   model.AuditRecord
// @Failure      401  {object}  common.AppError "Session expired"
// @Failure      404  {object}  common.AppError "Auditing disabled"
// @Failure      500  {object}  common.AppError "Could not read activity"
// @Router       /api/activity [get]
func (h *AccountHandler) ListActivity(w http.ResponseWriter, r *http.Request) *common.AppError {
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid limit", err)
		}
		limit = v
	}

	records, err := h.service.Activity(r.Context(), sess, limit)
	if err != nil {
		return toAppError(err, "Could not read activity")
	}
	common.WriteJSON(w, http.StatusOK, records)
	return nil
}
