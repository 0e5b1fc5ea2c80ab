package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nutrilog/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var ledgerColumns = []string{
	"id", "user_id", "kind", "entry_ts", "food_name", "calories",
	"protein_g", "carb_g", "fat_g", "portion_unit", "meal_slot",
	"activity_name", "duration_min", "calories_burned",
}

func TestPostgresStore_AppendEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	t.Run("assigns an id and inserts one row", func(t *testing.T) {
		entry := &models.LedgerEntry{
			UserID:    "user1",
			Kind:      models.KindMeal,
			Timestamp: time.Now(),
			FoodName:  "Pizza",
			Calories:  266,
			ProteinG:  11,
			CarbG:     33,
			FatG:      10,
			MealSlot:  models.SlotLunch,
		}

		mock.ExpectExec("INSERT INTO ledger").
			WithArgs(sqlmock.AnyArg(), "user1", models.KindMeal, sqlmock.AnyArg(),
				"Pizza", 266, 11, 33, 10, "", models.SlotLunch, "", 0, 0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.AppendEntry(entry)
		assert.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure propagates with cause", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO ledger").
			WillReturnError(errors.New("connection reset"))

		err := store.AppendEntry(&models.LedgerEntry{UserID: "user1", Kind: models.KindMeal})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestPostgresStore_EntriesForRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	t.Run("scans both entry kinds", func(t *testing.T) {
		ts := start.Add(12 * time.Hour)
		mock.ExpectQuery("SELECT (.+) FROM ledger").
			WithArgs("user1", start, end).
			WillReturnRows(sqlmock.NewRows(ledgerColumns).
				AddRow("e2", "user1", "spor", ts.Add(time.Hour), "", 0, 0, 0, 0, "", "", "Koşu", 30, 320).
				AddRow("e1", "user1", "yemek", ts, "Pizza", 500, 20, 60, 15, "dilim", "Lunch", "", 0, 0))

		entries, err := store.EntriesForRange("user1", start, end)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, models.KindExercise, entries[0].Kind)
		assert.Equal(t, 320, entries[0].CaloriesBurned)
		assert.Equal(t, models.KindMeal, entries[1].Kind)
		assert.Equal(t, 500, entries[1].Calories)
	})

	t.Run("empty day returns empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM ledger").
			WithArgs("user1", start, end).
			WillReturnRows(sqlmock.NewRows(ledgerColumns))

		entries, err := store.EntriesForRange("user1", start, end)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestPostgresStore_DeleteEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	t.Run("reports the deleted entry's owner", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM ledger WHERE id = \\$1 RETURNING user_id").
			WithArgs("e1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user1"))

		userID, err := store.DeleteEntry("e1")
		assert.NoError(t, err)
		assert.Equal(t, "user1", userID)
	})

	t.Run("unknown id is not found, not success", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM ledger WHERE id = \\$1 RETURNING user_id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		_, err := store.DeleteEntry("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresStore_Water(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	t.Run("append assigns id", func(t *testing.T) {
		entry := &models.WaterEntry{
			UserID:    "user1",
			AmountML:  200,
			DateKey:   "2026-08-28",
			CreatedAt: time.Now(),
		}

		mock.ExpectExec("INSERT INTO water_log").
			WithArgs(sqlmock.AnyArg(), "user1", 200, "2026-08-28", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.AppendWater(entry)
		assert.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
	})

	t.Run("total sums by date key only", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_ml\\), 0\\) FROM water_log").
			WithArgs("user1", "2026-08-28").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1500))

		total, err := store.WaterTotal("user1", "2026-08-28")
		assert.NoError(t, err)
		assert.Equal(t, 1500, total)
	})
}

func TestPostgresStore_Profile(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	t.Run("existing profile", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id, weight_kg, target_calories FROM users").
			WithArgs("user1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "weight_kg", "target_calories"}).
				AddRow("user1", 80.0, 2200))

		profile, err := store.Profile("user1")
		assert.NoError(t, err)
		assert.Equal(t, 80.0, profile.WeightKg)
		assert.Equal(t, 2200, profile.TargetCalories)
	})

	t.Run("missing profile", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id, weight_kg, target_calories FROM users").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "weight_kg", "target_calories"}))

		_, err := store.Profile("ghost")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
