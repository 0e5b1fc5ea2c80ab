package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nutrilog/backend/internal/catalog"
	"github.com/nutrilog/backend/internal/models"
)

const dayLayout = "2006-01-02"

// EntryService validates and constructs ledger entries before handing
// them to the store. Entries are immutable once written; the only
// mutation the service exposes is an explicit delete by id.
type EntryService struct {
	store     EntryStore
	catalog   *catalog.Catalog
	cache     *TrendCache
	validator *ValidationHelper
	now       func() time.Time
}

func NewEntryService(store EntryStore, cat *catalog.Catalog, cache *TrendCache) *EntryService {
	return &EntryService{
		store:     store,
		catalog:   cat,
		cache:     cache,
		validator: NewValidationHelper(),
		now:       time.Now,
	}
}

type MealRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	FoodName    string `json:"food_name" validate:"required"`
	Calories    int    `json:"calories" validate:"gte=0"`
	ProteinG    int    `json:"protein" validate:"gte=0"`
	CarbG       int    `json:"carb" validate:"gte=0"`
	FatG        int    `json:"fat" validate:"gte=0"`
	PortionUnit string `json:"portion_unit"`
	Date        string `json:"date,omitempty"`
	MealSlot    string `json:"meal_slot,omitempty" validate:"omitempty,oneof=Breakfast Lunch Dinner Snack"`
}

type ExerciseRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	ExerciseKey string `json:"exercise_key" validate:"required"`
	DurationMin int    `json:"duration_min" validate:"required,gt=0"`
	Date        string `json:"date,omitempty"`
}

type WaterRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	AmountML int    `json:"amount_ml" validate:"required,gt=0"`
	Date     string `json:"date,omitempty"`
}

// entryTimestamp resolves the display instant for a new entry. A
// backdated entry keeps the requested calendar day but carries the
// current hour and minute, so entries logged the same day sort by the
// order they were logged, not by the client's clock. Date strings are
// taken at face value; no timezone conversion happens.
func entryTimestamp(dateStr string, now time.Time) (time.Time, error) {
	if dateStr == "" {
		return now, nil
	}

	day, err := time.ParseInLocation(dayLayout, dateStr, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, dateStr)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), 0, 0, now.Location()), nil
}

// CreateMeal freezes the submitted nutrition values into a new ledger
// entry. The catalog is deliberately not consulted again here: the
// entry is a denormalized copy, so later catalog edits never change it.
func (s *EntryService) CreateMeal(req *MealRequest) (*models.LedgerEntry, error) {
	ts, err := entryTimestamp(req.Date, s.now())
	if err != nil {
		return nil, err
	}

	slot := models.MealSlot(req.MealSlot)
	if slot == "" {
		slot = models.SlotSnack
	}

	entry := &models.LedgerEntry{
		UserID:      req.UserID,
		Kind:        models.KindMeal,
		Timestamp:   ts,
		FoodName:    req.FoodName,
		Calories:    req.Calories,
		ProteinG:    req.ProteinG,
		CarbG:       req.CarbG,
		FatG:        req.FatG,
		PortionUnit: req.PortionUnit,
		MealSlot:    slot,
	}
	if err := s.store.AppendEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateExercise resolves the exercise and the user's weight, computes
// the burn, and appends the entry. A missing profile is not an error:
// the documented fallback weight applies.
func (s *EntryService) CreateExercise(req *ExerciseRequest) (*models.LedgerEntry, error) {
	exercise, ok := s.catalog.Exercise(req.ExerciseKey)
	if !ok {
		return nil, fmt.Errorf("exercise %q: %w", req.ExerciseKey, ErrNotFound)
	}

	weight := DefaultWeightKg
	profile, err := s.store.Profile(req.UserID)
	switch {
	case err == nil && profile.WeightKg > 0:
		weight = profile.WeightKg
	case err != nil && !errors.Is(err, ErrProfileNotFound):
		return nil, err
	}

	ts, err := entryTimestamp(req.Date, s.now())
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		UserID:         req.UserID,
		Kind:           models.KindExercise,
		Timestamp:      ts,
		ActivityName:   exercise.Name,
		DurationMin:    req.DurationMin,
		CaloriesBurned: CaloriesBurned(exercise.MET, weight, req.DurationMin),
	}
	if err := s.store.AppendEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) CreateWater(req *WaterRequest) (*models.WaterEntry, error) {
	now := s.now()
	ts, err := entryTimestamp(req.Date, now)
	if err != nil {
		return nil, err
	}

	entry := &models.WaterEntry{
		UserID:    req.UserID,
		AmountML:  req.AmountML,
		DateKey:   ts.Format(dayLayout),
		CreatedAt: now,
	}
	if err := s.store.AppendWater(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes one entry and reports its former owner. A second
// delete of the same id fails with ErrNotFound; deletion is not
// idempotent.
func (s *EntryService) Delete(id string) (string, error) {
	return s.store.DeleteEntry(id)
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must only contain a single JSON object")
	}
	return nil
}

// LogMeal records a consumed meal
// @Summary Log a meal
// @Description Append an immutable meal entry to the user's ledger
// @Tags entries
// @Accept json
// @Produce json
// @Param request body MealRequest true "Meal data"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /meals [post]
func (s *EntryService) LogMeal(w http.ResponseWriter, r *http.Request) {
	var req MealRequest
	if err := decodeRequest(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	entry, err := s.CreateMeal(&req)
	if err != nil {
		s.writeEntryError(w, "meal", err)
		return
	}

	s.cache.Invalidate(r.Context(), entry.UserID)
	writeJSON(w, map[string]any{"success": true, "entry": entry})
}

// LogExercise records an exercise session
// @Summary Log an exercise
// @Description Resolve an exercise, compute calories burned and append the entry
// @Tags entries
// @Accept json
// @Produce json
// @Param request body ExerciseRequest true "Exercise data"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercises [post]
func (s *EntryService) LogExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseRequest
	if err := decodeRequest(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	entry, err := s.CreateExercise(&req)
	if err != nil {
		s.writeEntryError(w, "exercise", err)
		return
	}

	s.cache.Invalidate(r.Context(), entry.UserID)
	writeJSON(w, map[string]any{"success": true, "entry": entry})
}

// LogWater records water intake
// @Summary Log water intake
// @Tags water
// @Accept json
// @Produce json
// @Param request body WaterRequest true "Water data"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Router /water [post]
func (s *EntryService) LogWater(w http.ResponseWriter, r *http.Request) {
	var req WaterRequest
	if err := decodeRequest(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	entry, err := s.CreateWater(&req)
	if err != nil {
		s.writeEntryError(w, "water", err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "entry": entry})
}

// DeleteEntry removes a ledger entry by id
// @Summary Delete an entry
// @Tags entries
// @Produce json
// @Param entryId path string true "Entry ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} ErrorResponse
// @Router /entries/{entryId} [delete]
func (s *EntryService) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryId")
	if entryID == "" {
		SendErrorResponse(w, "Entry id required", http.StatusBadRequest, nil)
		return
	}

	userID, err := s.Delete(entryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			SendErrorResponse(w, "Entry not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[ENTRY] Delete failed for %s: %v", entryID, err)
		SendErrorResponse(w, "Failed to delete entry", http.StatusInternalServerError, nil)
		return
	}

	s.cache.Invalidate(r.Context(), userID)
	writeJSON(w, map[string]any{"success": true})
}

func (s *EntryService) writeEntryError(w http.ResponseWriter, kind string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, ErrBadDate):
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	default:
		log.Printf("[ENTRY] Failed to log %s: %v", kind, err)
		SendErrorResponse(w, "Failed to save entry", http.StatusInternalServerError, nil)
	}
}
