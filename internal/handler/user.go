package handler

import (
	"log/slog"
	"net/http"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/auth"
	"github.com/hvaldez/gamestore/internal/service"
)

// UserHandler serves the authenticated user's own profile. "Who" always comes
// from the verified token in the request context, never from the URL or body.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleMe returns the caller's profile.
//
// HTTP: GET /api/users/me (bearer)
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	profile, err := h.users.GetProfile(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdateMe updates the caller's display name and/or profile image.
//
// HTTP: PUT /api/users/me (bearer)
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req struct {
		UserName   string `json:"userName"`
		ProfileImg string `json:"profileImg"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.UpdateProfile(r.Context(), identity.ID, req.UserName, req.ProfileImg); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}
