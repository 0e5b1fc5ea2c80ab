package models

import "time"

// EntryKind discriminates ledger records. The wire values are kept from
// the original data set so existing stored entries remain readable.
type EntryKind string

const (
	KindMeal     EntryKind = "yemek"
	KindExercise EntryKind = "spor"
)

type MealSlot string

const (
	SlotBreakfast MealSlot = "Breakfast"
	SlotLunch     MealSlot = "Lunch"
	SlotDinner    MealSlot = "Dinner"
	SlotSnack     MealSlot = "Snack"
)

// LedgerEntry is one immutable meal or exercise record. Nutrition
// values are denormalized copies taken at write time; a later catalog
// change never rewrites a stored entry. Entries are created and
// deleted, never updated.
type LedgerEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Kind      EntryKind `json:"kind" db:"kind"`
	Timestamp time.Time `json:"-" db:"entry_ts"`

	// LoggedAt is the display form of Timestamp (DD.MM.YYYY HH:MM),
	// filled in on read.
	LoggedAt string `json:"logged_at,omitempty"`

	// Meal fields (Kind == KindMeal)
	FoodName    string   `json:"food_name,omitempty" db:"food_name"`
	Calories    int      `json:"calories" db:"calories"`
	ProteinG    int      `json:"protein,omitempty" db:"protein_g"`
	CarbG       int      `json:"carb,omitempty" db:"carb_g"`
	FatG        int      `json:"fat,omitempty" db:"fat_g"`
	PortionUnit string   `json:"portion_unit,omitempty" db:"portion_unit"`
	MealSlot    MealSlot `json:"meal_slot,omitempty" db:"meal_slot"`

	// Exercise fields (Kind == KindExercise)
	ActivityName   string `json:"activity_name,omitempty" db:"activity_name"`
	DurationMin    int    `json:"duration_min,omitempty" db:"duration_min"`
	CaloriesBurned int    `json:"calories_burned,omitempty" db:"calories_burned"`
}

// WaterEntry lives in its own ledger, keyed by calendar-day string
// rather than a timestamp range.
type WaterEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	AmountML  int       `json:"amount_ml" db:"amount_ml"`
	DateKey   string    `json:"date_key" db:"date_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserProfile is owned by the upstream account system; this service
// only reads weight and the daily calorie goal from it.
type UserProfile struct {
	UserID         string  `json:"user_id" db:"user_id"`
	WeightKg       float64 `json:"weight_kg" db:"weight_kg"`
	TargetCalories int     `json:"target_calories" db:"target_calories"`
}
