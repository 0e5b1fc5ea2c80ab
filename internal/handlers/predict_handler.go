package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/nutrilog/backend/internal/catalog"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/services"
)

const maxImageBytes = 10 << 20 // 10 MB

type PredictHandler struct {
	classifier *services.ClassifierService
	catalog    *catalog.Catalog
}

func NewPredictHandler(classifier *services.ClassifierService, cat *catalog.Catalog) *PredictHandler {
	return &PredictHandler{
		classifier: classifier,
		catalog:    cat,
	}
}

// Predict classifies a food photo and returns its nutrition facts
// @Summary Classify a food image
// @Description Send a photo to the external classifier and look the label up in the food catalog
// @Tags classifier
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Food image"
// @Success 200 {object} map[string]any
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /predict [post]
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		services.SendErrorResponse(w, "Invalid multipart request", http.StatusBadRequest, nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		services.SendErrorResponse(w, "Image file required", http.StatusBadRequest, nil)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		services.SendErrorResponse(w, "Failed to read image", http.StatusBadRequest, nil)
		return
	}

	label, err := h.classifier.Classify(r.Context(), image, header.Filename)
	if err != nil {
		if errors.Is(err, services.ErrClassifierUnavailable) {
			log.Printf("[PREDICT] Classifier failure: %v", err)
			services.SendErrorResponse(w, "Classifier unavailable", http.StatusBadGateway, nil)
			return
		}
		services.SendErrorResponse(w, "Classification failed", http.StatusInternalServerError, nil)
		return
	}

	// Labels outside the catalog still produce an answer: a
	// zero-nutrition placeholder the client can let the user edit.
	item, ok := h.catalog.Food(label)
	if !ok {
		item = models.FoodItem{Key: label, Name: label, PortionUnit: "-"}
	}

	writeResponse(w, map[string]any{
		"success":    true,
		"prediction": label,
		"data":       item,
	})
}
