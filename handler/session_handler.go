package handler

import (
	"net/http"

	"bankist/common"
	"bankist/logger"
	"bankist/model"
	"bankist/service"
)

// SessionHandler holds dependencies for login and session handlers.
type SessionHandler struct {
	sessions *service.SessionService
	accounts *service.AccountService
	auth     *service.AuthService
}

func NewSessionHandler(sessions *service.SessionService, accounts *service.AccountService, auth *service.AuthService) *SessionHandler {
	return &SessionHandler{sessions: sessions, accounts: accounts, auth: auth}
}

// Login godoc
// @Summary      Log in to an account
// @Description  Opens the single active session. A successful login replaces any previous session; a failed one leaves it untouched.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Username and pin"
// @Success      200  {object}  model.LoginResponse
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Unknown username or wrong pin"
// @Router       /login [post]
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	sess, err := h.sessions.Login(r.Context(), req.Username, string(req.Pin))
	if err != nil {
		return toAppError(err, "Could not log in")
	}

	token, expiresAt, err := h.auth.IssueToken(sess)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not issue token", err)
	}

	info, err := h.sessions.Info(sess)
	if err != nil {
		return toAppError(err, "Could not read session")
	}
	snap, err := h.accounts.Snapshot(sess, false)
	if err != nil {
		return toAppError(err, "Could not read account")
	}

	logger.Log.WithField("username", sess.Username()).Info("Login response sent")
	common.WriteJSON(w, http.StatusOK, model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Welcome:   welcome(snap),
		Session:   info,
		Account:   snap,
	})
	return nil
}

// Logout godoc
// @Summary      Log out
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  common.AppError "Session expired"
// @Router       /api/logout [post]
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}
	if err := h.sessions.Logout(r.Context(), sess); err != nil {
		return toAppError(err, "Could not log out")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Session godoc
// @Summary      Show the active session
// @Description  Returns the remaining seconds of the logout countdown. Reading does not reset it.
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.SessionInfo
// @Failure      401  {object}  common.AppError "Session expired"
// @Router       /api/session [get]
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) *common.AppError {
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		return appErr
	}
	info, err := h.sessions.Info(sess)
	if err != nil {
		return toAppError(err, "Could not read session")
	}
	common.WriteJSON(w, http.StatusOK, info)
	return nil
}

func welcome(snap *model.Snapshot) string {
	if name := snap.FirstName(); name != "" {
		return "Welcome back, " + name
	}
	return "Welcome back"
}
