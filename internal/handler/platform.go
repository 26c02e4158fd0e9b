package handler

import (
	"log/slog"
	"net/http"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/repository"
	"github.com/hvaldez/gamestore/internal/service"
)

// PlatformHandler serves the platform catalog.
//
// Quirk kept from the original API: the write endpoints address platforms by
// an "id" query parameter (POST /update?id=..., DELETE /delete?id=...), not a
// path segment.
type PlatformHandler struct {
	platforms *service.PlatformService
	logger    *slog.Logger
}

func NewPlatformHandler(platforms *service.PlatformService, logger *slog.Logger) *PlatformHandler {
	return &PlatformHandler{platforms: platforms, logger: logger}
}

// HandleList returns all platforms, including deactivated ones.
//
// HTTP: GET /api/platforms
func (h *PlatformHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.platforms.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, platforms)
}

// HandleSearch filters active platforms by title substring.
//
// HTTP: GET /api/platforms/search?title=...
func (h *PlatformHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.platforms.Search(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, platforms)
}

// HandleCreate stores a new platform.
//
// HTTP: POST /api/platforms/new (bearer)
func (h *PlatformHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Active      *bool  `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	platform, err := h.platforms.Create(r.Context(), req.Title, req.Description, req.Active)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, platform)
}

// HandleUpdate applies a partial update to the platform named by ?id=.
//
// HTTP: POST /api/platforms/update?id=... (bearer)
func (h *PlatformHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "id query parameter is required"))
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	platform, err := h.platforms.Update(r.Context(), id, repository.CatalogUpdate{
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, platform)
}

// HandleDeactivate soft-deletes the platform named by ?id=.
//
// HTTP: DELETE /api/platforms/delete?id=... (bearer)
func (h *PlatformHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "id query parameter is required"))
		return
	}

	platform, err := h.platforms.Deactivate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "platform deactivated",
		"platform": platform,
	})
}
