package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nutrilog/backend/internal/catalog"
	"github.com/nutrilog/backend/internal/services"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// SearchFood searches the food reference table
// @Summary Search foods
// @Description Case-insensitive substring match over key and name, in catalog order
// @Tags catalog
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} map[string]any
// @Failure 400 {object} services.ErrorResponse
// @Router /foods/search [get]
func (h *CatalogHandler) SearchFood(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		services.SendErrorResponse(w, "Search term required", http.StatusBadRequest, nil)
		return
	}

	writeResponse(w, map[string]any{
		"success": true,
		"results": h.catalog.SearchFood(query),
	})
}

// SearchExercise searches the exercise reference table
// @Summary Search exercises
// @Description Case-insensitive substring match over key and name, in catalog order
// @Tags catalog
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} map[string]any
// @Failure 400 {object} services.ErrorResponse
// @Router /exercises/search [get]
func (h *CatalogHandler) SearchExercise(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		services.SendErrorResponse(w, "Search term required", http.StatusBadRequest, nil)
		return
	}

	writeResponse(w, map[string]any{
		"success": true,
		"results": h.catalog.SearchExercise(query),
	})
}

func writeResponse(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
