package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hvaldez/gamestore/internal/repository"
	"github.com/hvaldez/gamestore/internal/service"
)

// GameHandler serves the game catalog CRUD.
type GameHandler struct {
	games  *service.GameService
	logger *slog.Logger
}

func NewGameHandler(games *service.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{games: games, logger: logger}
}

// HandleList returns all games.
//
// HTTP: GET /api/games
func (h *GameHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// HandleSearch filters games by title substring.
//
// HTTP: GET /api/games/search?title=...
func (h *GameHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.Search(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// HandleGetByID returns a single game.
//
// HTTP: GET /api/games/{id}
func (h *GameHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// gameCreateRequest is the wire shape for creating a game.
type gameCreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Developer   string  `json:"developer"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	CoverImg    string  `json:"coverImg"`
	Discount    float64 `json:"discount"`
	Active      *bool   `json:"active"`
}

// HandleCreate stores a new game.
//
// HTTP: POST /api/games (bearer)
func (h *GameHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req gameCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	game, err := h.games.Create(r.Context(), service.GameInput{
		Title:       req.Title,
		Description: req.Description,
		Developer:   req.Developer,
		Category:    req.Category,
		Price:       req.Price,
		CoverImg:    req.CoverImg,
		Discount:    req.Discount,
		Active:      req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

// gameUpdateRequest distinguishes absent fields from zero values, so a PUT
// that omits "price" does not reset it.
type gameUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Developer   *string  `json:"developer"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	CoverImg    *string  `json:"coverImg"`
	Discount    *float64 `json:"discount"`
	Active      *bool    `json:"active"`
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /api/games/{id} (bearer)
func (h *GameHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req gameUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	game, err := h.games.Update(r.Context(), chi.URLParam(r, "id"), repository.GameUpdate{
		Title:       req.Title,
		Description: req.Description,
		Developer:   req.Developer,
		Category:    req.Category,
		Price:       req.Price,
		CoverImg:    req.CoverImg,
		Discount:    req.Discount,
		Active:      req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// HandleDelete removes a game.
//
// HTTP: DELETE /api/games/{id} (bearer)
func (h *GameHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
