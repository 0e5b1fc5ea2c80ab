package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nutrilog/backend/internal/models"
)

const displayTimeLayout = "02.01.2006 15:04"

// weekdayLabels index by time.Weekday (Sunday = 0). The abbreviations
// match the original client's locale and are fixed, not derived from
// the data being summarized.
var weekdayLabels = [7]string{"Paz", "Pzt", "Sal", "Çar", "Per", "Cum", "Cmt"}

// SummaryService computes daily, weekly and goal-vs-actual reports.
// It is stateless: every report is purely a function of the store
// contents at query time.
type SummaryService struct {
	store EntryStore
	cache *TrendCache
	now   func() time.Time
}

func NewSummaryService(store EntryStore, cache *TrendCache) *SummaryService {
	return &SummaryService{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

type DailySummary struct {
	Entries       []models.LedgerEntry `json:"logs"`
	TotalCalories int                  `json:"total_calories"`
	TotalBurnt    int                  `json:"total_burnt"`
	TotalProteinG int                  `json:"total_protein"`
	TotalCarbG    int                  `json:"total_carb"`
	TotalFatG     int                  `json:"total_fat"`
}

type TrendReport struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type MacroReport struct {
	ProteinG int `json:"protein"`
	CarbG    int `json:"carb"`
	FatG     int `json:"fat"`
	Calories int `json:"calories"`
	Burnt    int `json:"burnt"`
}

type GoalTarget struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbG    int `json:"carb"`
	FatG     int `json:"fat"`
}

type GoalReport struct {
	Target GoalTarget  `json:"target"`
	Actual MacroReport `json:"actual"`
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

func parseDayParam(dateStr string, now time.Time) (time.Time, error) {
	if dateStr == "" {
		return now, nil
	}
	day, err := time.ParseInLocation(dayLayout, dateStr, now.Location())
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return day, nil
}

// accumulate partitions entries strictly by kind: exercise entries feed
// only the burnt total, meal entries feed only the intake totals. An
// unrecognized kind is skipped loudly rather than miscounted.
func accumulate(entries []models.LedgerEntry, summary *DailySummary) {
	for _, e := range entries {
		switch e.Kind {
		case models.KindExercise:
			summary.TotalBurnt += e.CaloriesBurned
		case models.KindMeal:
			summary.TotalCalories += e.Calories
			summary.TotalProteinG += e.ProteinG
			summary.TotalCarbG += e.CarbG
			summary.TotalFatG += e.FatG
		default:
			log.Printf("[SUMMARY] Skipping entry %s with unknown kind %q", e.ID, e.Kind)
		}
	}
}

// ComputeDailySummary returns the day's entries newest-first together
// with the intake and burn totals.
func (s *SummaryService) ComputeDailySummary(userID string, day time.Time) (*DailySummary, error) {
	start, end := dayBounds(day)
	entries, err := s.store.EntriesForRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].LoggedAt = entries[i].Timestamp.Format(displayTimeLayout)
	}

	summary := &DailySummary{Entries: entries}
	accumulate(entries, summary)
	return summary, nil
}

// ComputeTrend returns meal calories for the 7 calendar days ending
// today, oldest first. Exercise entries never contribute. Results are
// cached per user for a short window and dropped on any ledger write.
func (s *SummaryService) ComputeTrend(ctx context.Context, userID string) (*TrendReport, error) {
	if cached, ok := s.cache.Get(ctx, userID); ok {
		return cached, nil
	}

	now := s.now()
	report := &TrendReport{
		Labels: make([]string, 0, 7),
		Data:   make([]int, 0, 7),
	}

	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		start, end := dayBounds(day)

		entries, err := s.store.EntriesForRange(userID, start, end)
		if err != nil {
			return nil, err
		}

		total := 0
		for _, e := range entries {
			if e.Kind == models.KindMeal {
				total += e.Calories
			}
		}

		report.Labels = append(report.Labels, weekdayLabels[day.Weekday()])
		report.Data = append(report.Data, total)
	}

	s.cache.Set(ctx, userID, report)
	return report, nil
}

// ComputeMacros is the daily partition without the raw entry list.
func (s *SummaryService) ComputeMacros(userID string, day time.Time) (*MacroReport, error) {
	summary, err := s.ComputeDailySummary(userID, day)
	if err != nil {
		return nil, err
	}
	return &MacroReport{
		ProteinG: summary.TotalProteinG,
		CarbG:    summary.TotalCarbG,
		FatG:     summary.TotalFatG,
		Calories: summary.TotalCalories,
		Burnt:    summary.TotalBurnt,
	}, nil
}

// ComputeGoal compares today's actuals against the profile's calorie
// goal and the macro targets derived from it. Unlike the exercise
// path, a missing profile here is a hard not-found.
func (s *SummaryService) ComputeGoal(userID string) (*GoalReport, error) {
	profile, err := s.store.Profile(userID)
	if err != nil {
		return nil, err
	}

	targetCalories := profile.TargetCalories
	if targetCalories <= 0 {
		targetCalories = DefaultTargetCalories
	}
	targets := MacroTargets(targetCalories)

	actual, err := s.ComputeMacros(userID, s.now())
	if err != nil {
		return nil, err
	}

	return &GoalReport{
		Target: GoalTarget{
			Calories: targetCalories,
			ProteinG: targets.ProteinG,
			CarbG:    targets.CarbG,
			FatG:     targets.FatG,
		},
		Actual: *actual,
	}, nil
}

// DailySummary returns a day's ledger with totals
// @Summary Daily summary
// @Description Entries and intake/burn totals for one calendar day
// @Tags summaries
// @Produce json
// @Param userId path string true "User ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Router /users/{userId}/summary [get]
func (s *SummaryService) DailySummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	day, err := parseDayParam(r.URL.Query().Get("date"), s.now())
	if err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	summary, err := s.ComputeDailySummary(userID, day)
	if err != nil {
		s.writeSummaryError(w, "daily summary", err)
		return
	}

	writeJSON(w, map[string]any{
		"success":        true,
		"logs":           summary.Entries,
		"total_calories": summary.TotalCalories,
		"total_burnt":    summary.TotalBurnt,
		"total_protein":  summary.TotalProteinG,
		"total_carb":     summary.TotalCarbG,
		"total_fat":      summary.TotalFatG,
	})
}

// WeeklyTrend returns the 7-day meal-calorie trend
// @Summary Weekly trend
// @Tags summaries
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]any
// @Router /users/{userId}/trend [get]
func (s *SummaryService) WeeklyTrend(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	report, err := s.ComputeTrend(r.Context(), userID)
	if err != nil {
		s.writeSummaryError(w, "weekly trend", err)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"labels":  report.Labels,
		"data":    report.Data,
	})
}

// MacroDistribution returns a day's macro breakdown
// @Summary Macro distribution
// @Tags summaries
// @Produce json
// @Param userId path string true "User ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Router /users/{userId}/macros [get]
func (s *SummaryService) MacroDistribution(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	day, err := parseDayParam(r.URL.Query().Get("date"), s.now())
	if err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	report, err := s.ComputeMacros(userID, day)
	if err != nil {
		s.writeSummaryError(w, "macro distribution", err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "macros": report})
}

// GoalSummary returns target vs actual intake for today
// @Summary Goal summary
// @Tags summaries
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} ErrorResponse
// @Router /users/{userId}/goal [get]
func (s *SummaryService) GoalSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	report, err := s.ComputeGoal(userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			SendErrorResponse(w, "User profile not found", http.StatusNotFound, nil)
			return
		}
		s.writeSummaryError(w, "goal summary", err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "goal": report})
}

// WaterStatus returns total water intake for a day
// @Summary Water status
// @Tags water
// @Produce json
// @Param userId path string true "User ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Router /users/{userId}/water [get]
func (s *SummaryService) WaterStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	day, err := parseDayParam(r.URL.Query().Get("date"), s.now())
	if err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	total, err := s.store.WaterTotal(userID, day.Format(dayLayout))
	if err != nil {
		s.writeSummaryError(w, "water status", err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "total_ml": total})
}

func (s *SummaryService) writeSummaryError(w http.ResponseWriter, report string, err error) {
	log.Printf("[SUMMARY] Failed to compute %s: %v", report, err)
	SendErrorResponse(w, "Failed to compute "+report, http.StatusInternalServerError, nil)
}
