package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nutrilog/backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func newClassifierFixture(t *testing.T, handler http.HandlerFunc) *ClassifierService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClassifierService(&config.ClassifierConfig{
		URL:     server.URL,
		Timeout: 5 * time.Second,
	})
}

func TestClassifierService_Classify(t *testing.T) {
	t.Run("returns the predicted label", func(t *testing.T) {
		svc := newClassifierFixture(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/classify", r.URL.Path)
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			assert.NoError(t, err)
			assert.Equal(t, "meal.jpg", header.Filename)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"label": "pizza"})
		})

		label, err := svc.Classify(context.Background(), []byte("not-a-real-jpeg"), "meal.jpg")
		assert.NoError(t, err)
		assert.Equal(t, "pizza", label)
	})

	t.Run("server error surfaces as dependency failure", func(t *testing.T) {
		svc := newClassifierFixture(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model loading", http.StatusInternalServerError)
		})

		_, err := svc.Classify(context.Background(), []byte("img"), "meal.jpg")
		assert.ErrorIs(t, err, ErrClassifierUnavailable)
	})

	t.Run("empty label is a failure, not an answer", func(t *testing.T) {
		svc := newClassifierFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"label": ""})
		})

		_, err := svc.Classify(context.Background(), []byte("img"), "meal.jpg")
		assert.ErrorIs(t, err, ErrClassifierUnavailable)
	})
}
