package models

// FoodItem is one row of the read-only food reference table.
type FoodItem struct {
	Key         string `json:"id"`
	Name        string `json:"name"`
	Calories    int    `json:"calories"`
	ProteinG    int    `json:"protein"`
	CarbG       int    `json:"carb"`
	FatG        int    `json:"fat"`
	PortionUnit string `json:"portion_unit"`
}

// ExerciseItem is one row of the read-only exercise reference table.
// MET is the metabolic equivalent factor fed into the burn formula.
type ExerciseItem struct {
	Key  string  `json:"id"`
	Name string  `json:"name"`
	MET  float64 `json:"met"`
}
