package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lumeris/adventure/internal/storage"
)

// PackHandler lists the content packs available to start a game from.
type PackHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewPackHandler(storage storage.Storage, logger *slog.Logger) *PackHandler {
	return &PackHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *PackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Supported methods: GET"}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	packs, err := h.storage.ListPacks(r.Context())
	if err != nil {
		h.logger.Error("Failed to list packs", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Failed to list content packs"}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(packs); err != nil {
		h.logger.Error("Failed to encode packs response", "error", err)
	}
}
