package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lumeris/adventure/internal/game"
	"github.com/lumeris/adventure/internal/storage"
	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/dialogue"
	"github.com/lumeris/adventure/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateGameRequest starts a new play session from a pack file.
type CreateGameRequest struct {
	Pack string `json:"pack"` // pack filename, e.g. "lumeris.json"
}

// ActRequest is one player input tick.
type ActRequest struct {
	Action   string `json:"action"` // interact, confirm, move_choice, cancel
	ObjectID string `json:"object_id,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// GameResponse is the session snapshot plus the player-facing view.
type GameResponse struct {
	ID    uuid.UUID        `json:"id"`
	State *state.GameState `json:"state"`
	View  game.View        `json:"view"`
}

// GameHandler serves play sessions.
// Routes:
// POST /v1/game           - Create a game from a content pack
// GET /v1/game/{id}       - Read game state by ID
// DELETE /v1/game/{id}    - Delete game state by ID
// POST /v1/game/{id}/act  - Apply one player input
type GameHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewGameHandler(storage storage.Storage, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/game")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	idStr, rest, _ := strings.Cut(path, "/")
	gameID, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid game ID", "id", idStr, "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid game ID format")
		return
	}

	switch {
	case rest == "act" && r.Method == http.MethodPost:
		h.handleAct(w, r, gameID)
	case rest == "" && r.Method == http.MethodGet:
		h.handleRead(w, r, gameID)
	case rest == "" && r.Method == http.MethodDelete:
		h.handleDelete(w, r, gameID)
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pack == "" {
		h.writeError(w, http.StatusBadRequest, "Request body must name a content pack")
		return
	}

	pack, err := h.storage.GetPack(r.Context(), req.Pack)
	if err != nil {
		h.logger.Warn("Pack not found", "pack", req.Pack, "error", err)
		h.writeError(w, http.StatusNotFound, "Content pack not found: "+req.Pack)
		return
	}

	ps, err := game.NewPlayState(pack, h.logger)
	if err != nil {
		h.logger.Error("Failed to build play state", "pack", req.Pack, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to start game: "+err.Error())
		return
	}

	gs := state.NewGameState(req.Pack)
	ps.Snapshot(gs)

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save game state", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.writeGame(w, gs, ps)
}

func (h *GameHandler) handleRead(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	gs, ps, ok := h.restore(w, r, gameID)
	if !ok {
		return
	}
	h.writeGame(w, gs, ps)
}

func (h *GameHandler) handleDelete(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), gameID); err != nil {
		h.logger.Error("Failed to delete game state", "uuid", gameID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) handleAct(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	var req ActRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	gs, ps, ok := h.restore(w, r, gameID)
	if !ok {
		return
	}

	var actErr error
	switch req.Action {
	case "interact":
		if req.ObjectID == "" {
			h.writeError(w, http.StatusBadRequest, "interact requires object_id")
			return
		}
		actErr = ps.InteractWith(req.ObjectID)
	case "confirm":
		actErr = ps.Confirm()
	case "move_choice":
		ps.MoveChoice(req.Offset)
	case "cancel":
		actErr = ps.CancelDialogue()
	default:
		h.writeError(w, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	if actErr != nil {
		// ErrNotFound out of a running session means broken authored
		// content. Surface it loudly rather than degrade.
		status := http.StatusInternalServerError
		if errors.Is(actErr, dialogue.ErrNotFound) && req.Action == "interact" {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Error("Action failed", "uuid", gameID, "action", req.Action, "error", actErr)
		h.writeError(w, status, actErr.Error())
		return
	}

	ps.Snapshot(gs)
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save game state", "uuid", gameID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	h.writeGame(w, gs, ps)
}

// restore loads a saved game and rebuilds its play state.
func (h *GameHandler) restore(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) (*state.GameState, *game.PlayState, bool) {
	gs, err := h.storage.LoadGameState(r.Context(), gameID)
	if err != nil {
		h.logger.Error("Failed to load game state", "uuid", gameID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load game state")
		return nil, nil, false
	}
	if gs == nil {
		h.writeError(w, http.StatusNotFound, "Game not found")
		return nil, nil, false
	}

	pack, err := h.loadPack(r, gs)
	if err != nil {
		h.logger.Error("Failed to load pack for game", "uuid", gameID, "pack", gs.Pack, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load content pack: "+gs.Pack)
		return nil, nil, false
	}

	ps, err := game.Restore(pack, gs, h.logger)
	if err != nil {
		h.logger.Error("Failed to restore play state", "uuid", gameID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to restore game: "+err.Error())
		return nil, nil, false
	}

	return gs, ps, true
}

// loadPack resolves the saved pack reference, which is the filename
// for saves created through this API.
func (h *GameHandler) loadPack(r *http.Request, gs *state.GameState) (*content.Pack, error) {
	return h.storage.GetPack(r.Context(), gs.Pack)
}

func (h *GameHandler) writeGame(w http.ResponseWriter, gs *state.GameState, ps *game.PlayState) {
	response := GameResponse{
		ID:    gs.ID,
		State: gs,
		View:  ps.View(),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode game response", "error", err)
	}
}

func (h *GameHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
