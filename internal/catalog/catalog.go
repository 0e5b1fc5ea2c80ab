package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nutrilog/backend/internal/models"
)

// SearchLimit caps every catalog search. The original service capped
// food search at 20 and left exercise search unbounded; one limit is
// applied to both here.
const SearchLimit = 20

// Catalog holds the food and exercise reference tables, loaded once at
// startup and shared read-only across handlers. Iteration order is the
// file's key order, so search results come back in catalog order, not
// ranked.
type Catalog struct {
	foods       []models.FoodItem
	exercises   []models.ExerciseItem
	foodByKey   map[string]int
	exerciseKey map[string]int
}

// foodRecord and exerciseRecord match the on-disk dataset layout, which
// is fixed by the upstream data files and uses Turkish field names.
type foodRecord struct {
	Name     string `json:"isim"`
	Calories int    `json:"kalori"`
	Protein  int    `json:"protein"`
	Carb     int    `json:"karbonhidrat"`
	Fat      int    `json:"yag"`
	Portion  string `json:"birim"`
}

type exerciseRecord struct {
	Name string  `json:"isim"`
	MET  float64 `json:"met"`
}

// Load reads both reference tables. With strict=false a missing or
// corrupt file leaves that table empty and logs a warning; with
// strict=true the error is returned so startup can fail instead.
func Load(foodsPath, exercisesPath string, strict bool) (*Catalog, error) {
	c := &Catalog{
		foodByKey:   make(map[string]int),
		exerciseKey: make(map[string]int),
	}

	if err := c.loadFoods(foodsPath); err != nil {
		if strict {
			return nil, fmt.Errorf("loading food table: %w", err)
		}
		log.Printf("[CATALOG] Food table unavailable, continuing with empty table: %v", err)
	}

	if err := c.loadExercises(exercisesPath); err != nil {
		if strict {
			return nil, fmt.Errorf("loading exercise table: %w", err)
		}
		log.Printf("[CATALOG] Exercise table unavailable, continuing with empty table: %v", err)
	}

	log.Printf("[CATALOG] Loaded %d foods, %d exercises", len(c.foods), len(c.exercises))
	return c, nil
}

func (c *Catalog) loadFoods(path string) error {
	return eachObjectEntry(path, func(key string, raw json.RawMessage) error {
		var rec foodRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("food %q: %w", key, err)
		}
		c.foodByKey[key] = len(c.foods)
		c.foods = append(c.foods, models.FoodItem{
			Key:         key,
			Name:        rec.Name,
			Calories:    rec.Calories,
			ProteinG:    rec.Protein,
			CarbG:       rec.Carb,
			FatG:        rec.Fat,
			PortionUnit: rec.Portion,
		})
		return nil
	})
}

func (c *Catalog) loadExercises(path string) error {
	return eachObjectEntry(path, func(key string, raw json.RawMessage) error {
		var rec exerciseRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("exercise %q: %w", key, err)
		}
		c.exerciseKey[key] = len(c.exercises)
		c.exercises = append(c.exercises, models.ExerciseItem{
			Key:  key,
			Name: rec.Name,
			MET:  rec.MET,
		})
		return nil
	})
}

// eachObjectEntry streams a top-level JSON object so the file's key
// order is preserved; encoding/json map decoding would lose it.
func eachObjectEntry(path string, fn func(key string, raw json.RawMessage) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%s: expected top-level object", path)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	return nil
}

// Food looks up a food by its exact key.
func (c *Catalog) Food(key string) (models.FoodItem, bool) {
	i, ok := c.foodByKey[key]
	if !ok {
		return models.FoodItem{}, false
	}
	return c.foods[i], true
}

// Exercise looks up an exercise by its exact key.
func (c *Catalog) Exercise(key string) (models.ExerciseItem, bool) {
	i, ok := c.exerciseKey[key]
	if !ok {
		return models.ExerciseItem{}, false
	}
	return c.exercises[i], true
}

// SearchFood returns foods whose key or display name contains the
// query, case-insensitively, in catalog order, capped at SearchLimit.
// An empty result is a valid answer, never an error.
func (c *Catalog) SearchFood(query string) []models.FoodItem {
	q := strings.ToLower(query)
	results := []models.FoodItem{}
	for _, item := range c.foods {
		if strings.Contains(strings.ToLower(item.Key), q) ||
			strings.Contains(strings.ToLower(item.Name), q) {
			results = append(results, item)
			if len(results) == SearchLimit {
				break
			}
		}
	}
	return results
}

// SearchExercise mirrors SearchFood over the exercise table.
func (c *Catalog) SearchExercise(query string) []models.ExerciseItem {
	q := strings.ToLower(query)
	results := []models.ExerciseItem{}
	for _, item := range c.exercises {
		if strings.Contains(strings.ToLower(item.Key), q) ||
			strings.Contains(strings.ToLower(item.Name), q) {
			results = append(results, item)
			if len(results) == SearchLimit {
				break
			}
		}
	}
	return results
}

// FoodCount and ExerciseCount report table sizes for startup logging
// and health reporting.
func (c *Catalog) FoodCount() int     { return len(c.foods) }
func (c *Catalog) ExerciseCount() int { return len(c.exercises) }
