package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nutrilog/backend/internal/models"
)

var (
	// ErrNotFound signals an unknown entry id. Deletes are not
	// idempotent: deleting an already-deleted id reports this error.
	ErrNotFound = errors.New("entry not found")
	// ErrProfileNotFound signals a user with no stored profile.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrBadDate signals a malformed client-supplied day string.
	ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// EntryStore is the ledger's persistence boundary: append, range query
// and delete over the combined meal/exercise ledger, plus the water
// ledger and read-only profile access. Atomicity of a single append or
// delete and isolation between concurrent writers are delegated to the
// backing store; no additional locking or ordering happens here.
type EntryStore interface {
	AppendEntry(entry *models.LedgerEntry) error
	EntriesForRange(userID string, start, end time.Time) ([]models.LedgerEntry, error)
	// DeleteEntry reports the owner of the removed entry so callers can
	// invalidate per-user caches.
	DeleteEntry(id string) (userID string, err error)
	AppendWater(entry *models.WaterEntry) error
	WaterTotal(userID, dateKey string) (int, error)
	Profile(userID string) (*models.UserProfile, error)
}

// PostgresStore implements EntryStore over a single postgres database.
// Entry ids are assigned here (uuid) rather than by callers, matching
// the document-store behavior the data set was migrated from.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AppendEntry(entry *models.LedgerEntry) error {
	entry.ID = uuid.NewString()

	_, err := s.db.Exec(`
		INSERT INTO ledger (id, user_id, kind, entry_ts, food_name, calories,
			protein_g, carb_g, fat_g, portion_unit, meal_slot,
			activity_name, duration_min, calories_burned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entry.ID, entry.UserID, entry.Kind, entry.Timestamp,
		entry.FoodName, entry.Calories, entry.ProteinG, entry.CarbG, entry.FatG,
		entry.PortionUnit, entry.MealSlot,
		entry.ActivityName, entry.DurationMin, entry.CaloriesBurned)
	if err != nil {
		return fmt.Errorf("appending ledger entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) EntriesForRange(userID string, start, end time.Time) ([]models.LedgerEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, kind, entry_ts, food_name, calories,
			protein_g, carb_g, fat_g, portion_unit, meal_slot,
			activity_name, duration_min, calories_burned
		FROM ledger
		WHERE user_id = $1 AND entry_ts >= $2 AND entry_ts < $3
		ORDER BY entry_ts DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying ledger range: %w", err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Timestamp,
			&e.FoodName, &e.Calories, &e.ProteinG, &e.CarbG, &e.FatG,
			&e.PortionUnit, &e.MealSlot,
			&e.ActivityName, &e.DurationMin, &e.CaloriesBurned); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) DeleteEntry(id string) (string, error) {
	var userID string
	err := s.db.QueryRow(`DELETE FROM ledger WHERE id = $1 RETURNING user_id`, id).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("deleting ledger entry: %w", err)
	}
	return userID, nil
}

func (s *PostgresStore) AppendWater(entry *models.WaterEntry) error {
	entry.ID = uuid.NewString()

	_, err := s.db.Exec(`
		INSERT INTO water_log (id, user_id, amount_ml, date_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, entry.AmountML, entry.DateKey, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending water entry: %w", err)
	}
	return nil
}

// WaterTotal sums intake for one calendar day. The water ledger is
// keyed by date string, not a timestamp range; this asymmetry with the
// main ledger is inherited from the stored data layout.
func (s *PostgresStore) WaterTotal(userID, dateKey string) (int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(amount_ml), 0) FROM water_log
		WHERE user_id = $1 AND date_key = $2`,
		userID, dateKey).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing water intake: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) Profile(userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.QueryRow(`
		SELECT user_id, weight_kg, target_calories FROM users
		WHERE user_id = $1`,
		userID).Scan(&p.UserID, &p.WeightKg, &p.TargetCalories)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading user profile: %w", err)
	}
	return &p, nil
}
