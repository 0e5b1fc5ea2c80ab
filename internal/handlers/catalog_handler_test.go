package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nutrilog/backend/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	dir := t.TempDir()
	foodsPath := filepath.Join(dir, "foods.json")
	exercisesPath := filepath.Join(dir, "exercises.json")

	foods := `{
		"pizza": {"isim": "Pizza", "kalori": 266, "protein": 11, "karbonhidrat": 33, "yag": 10, "birim": "dilim"},
		"pide": {"isim": "Pide", "kalori": 280, "protein": 12, "karbonhidrat": 40, "yag": 8, "birim": "porsiyon"}
	}`
	exercises := `{
		"kosu": {"isim": "Koşu", "met": 8.0}
	}`

	require.NoError(t, os.WriteFile(foodsPath, []byte(foods), 0o600))
	require.NoError(t, os.WriteFile(exercisesPath, []byte(exercises), 0o600))

	cat, err := catalog.Load(foodsPath, exercisesPath, true)
	require.NoError(t, err)
	return cat
}

func newCatalogRouter(t *testing.T) *chi.Mux {
	t.Helper()
	h := NewCatalogHandler(newHandlerCatalog(t))
	r := chi.NewRouter()
	r.Get("/foods/search", h.SearchFood)
	r.Get("/exercises/search", h.SearchExercise)
	return r
}

func TestCatalogHandler_SearchFood(t *testing.T) {
	t.Run("returns matches in catalog order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/foods/search?q=pi", nil)
		w := httptest.NewRecorder()
		newCatalogRouter(t).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Results []struct {
				Key string `json:"id"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "pizza", resp.Results[0].Key)
		assert.Equal(t, "pide", resp.Results[1].Key)
	})

	t.Run("no match is an empty list, not an error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/foods/search?q=sushi", nil)
		w := httptest.NewRecorder()
		newCatalogRouter(t).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"results":[]`)
	})

	t.Run("missing query is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/foods/search", nil)
		w := httptest.NewRecorder()
		newCatalogRouter(t).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalogHandler_SearchExercise(t *testing.T) {
	t.Run("matches on key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/exercises/search?q=kos", nil)
		w := httptest.NewRecorder()
		newCatalogRouter(t).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Koşu")
	})

	t.Run("missing query is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/exercises/search", nil)
		w := httptest.NewRecorder()
		newCatalogRouter(t).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
