package handler

import (
	"log/slog"
	"net/http"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/auth"
	"github.com/hvaldez/gamestore/internal/service"
)

// AuthHandler exposes the authentication endpoints.
//
// register, login and refresh are public; logout sits behind the auth
// middleware because it needs to know whose session list to prune.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
// Body: {"email": ..., "password": ..., "userName"?: ..., "profileImg"?: ...}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		UserName   string `json:"userName"`
		ProfileImg string `json:"profileImg"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.authSvc.Register(r.Context(), req.Email, req.Password, req.UserName, req.ProfileImg)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// HandleLogin verifies credentials and returns an access/refresh token pair.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pair, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// HandleRefresh mints a new access token from a refresh token.
//
// HTTP: POST /api/auth/refresh
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	access, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": access})
}

// HandleLogout revokes the presented refresh token for the authenticated user.
//
// HTTP: POST /api/auth/logout (bearer access token required)
//
// The access token used to authenticate this call stays valid until its own
// expiry; only the refresh token is revoked.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, kept as a guard.
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.authSvc.Logout(r.Context(), identity.ID, req.RefreshToken); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
