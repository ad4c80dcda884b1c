package handler

import (
	"net/http"
	"strconv"

	"bought-tab/internal/identity"
	"bought-tab/internal/model"
	"bought-tab/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler serves catalogue and product page requests.
type ProductHandler struct {
	products service.ProductService
	tabs     service.TabService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, tabs service.TabService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		tabs:     tabs,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products?limit=&offset=.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.queryInt(w, r, "limit", service.DefaultPageSize)
	if !ok {
		return
	}
	offset, ok := h.queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	products, err := h.products.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Tabs handles GET /api/products/{id}/tabs for the viewer on the request context.
func (h *ProductHandler) Tabs(w http.ResponseWriter, r *http.Request) {
	viewer := identity.ViewerFromContext(r.Context())

	tabs, err := h.tabs.ProductTabs(r.Context(), chi.URLParam(r, "id"), viewer)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tabs)
}

func (h *ProductHandler) queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "invalid "+name+" parameter", h.logger)
		return 0, false
	}
	return value, true
}
