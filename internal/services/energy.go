package services

// Macro split policy and energy densities. The split is fixed contract,
// not configuration: 30% of the calorie goal from protein, 40% from
// carbohydrate, 30% from fat, at 4/4/9 kcal per gram.
const (
	ProteinShare = 0.30
	CarbShare    = 0.40
	FatShare     = 0.30

	KcalPerGramProtein = 4
	KcalPerGramCarb    = 4
	KcalPerGramFat     = 9
)

const (
	// DefaultWeightKg is assumed when a user has no stored profile.
	DefaultWeightKg = 70.0
	// DefaultTargetCalories is assumed when a profile has no calorie goal.
	DefaultTargetCalories = 2000
)

// CaloriesBurned computes energy expenditure from a MET intensity
// factor, body weight and duration. The truncating conversion matches
// the values already persisted by earlier versions of the service, so
// it must stay a floor, not a round.
func CaloriesBurned(met, weightKg float64, durationMin int) int {
	return int(met * weightKg * float64(durationMin) / 60)
}

type MacroTarget struct {
	ProteinG int `json:"protein"`
	CarbG    int `json:"carb"`
	FatG     int `json:"fat"`
}

// MacroTargets derives daily gram targets from a calorie goal. Each
// term floors independently, so the calorie-equivalent sum can fall a
// few kcal short of the goal; that undershoot is part of the contract.
func MacroTargets(targetCalories int) MacroTarget {
	t := float64(targetCalories)
	return MacroTarget{
		ProteinG: int(t * ProteinShare / KcalPerGramProtein),
		CarbG:    int(t * CarbShare / KcalPerGramCarb),
		FatG:     int(t * FatShare / KcalPerGramFat),
	}
}
