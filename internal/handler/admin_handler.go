package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bought-tab/internal/content"
	"bought-tab/internal/model"
	"bought-tab/internal/platform"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// requestOverhead is the JSON envelope allowance on top of the content limit.
const requestOverhead = 4096

// AdminHandler serves the bought tab edit surface and administrative notices.
type AdminHandler struct {
	store    content.Store
	status   platform.Status
	maxBytes int
	logger   zerolog.Logger
}

// NewAdminHandler creates the admin handler. store may be nil when the platform is inactive.
func NewAdminHandler(store content.Store, status platform.Status, maxBytes int, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		store:    store,
		status:   status,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// GetBoughtTab handles GET /admin/products/{id}/bought-tab.
func (h *AdminHandler) GetBoughtTab(w http.ResponseWriter, r *http.Request) {
	editor, err := h.store.Editor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, editor)
}

// PutBoughtTab handles PUT /admin/products/{id}/bought-tab.
func (h *AdminHandler) PutBoughtTab(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	// JSON escaping can grow content up to six-fold; the store enforces the exact limit.
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxBytes)*6+requestOverhead)
	}

	var req model.TabContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, r, model.ErrContentTooLarge, h.logger)
			return
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}

	if err := h.store.Save(r.Context(), productID, req.Content); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Str("product_id", productID).
		Bool("cleared", req.Content == "").
		Msg("bought tab content updated")

	editor, err := h.store.Editor(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, editor)
}

// Notices handles GET /admin/notices.
func (h *AdminHandler) Notices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status.Notices())
}
