package config

import (
	"os"
	"strconv"
	"time"
)

type CatalogConfig struct {
	FoodsPath     string
	ExercisesPath string
	StrictLoad    bool
}

// LoadCatalogConfig resolves where the reference tables live and what a
// failed load means. StrictLoad=false reproduces the original behavior
// of serving with empty tables when a file is missing.
func LoadCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		FoodsPath:     getEnv("CATALOG_FOODS_PATH", "./data/foods.json"),
		ExercisesPath: getEnv("CATALOG_EXERCISES_PATH", "./data/exercises.json"),
		StrictLoad:    getEnvAsBool("CATALOG_STRICT_LOAD", false),
	}
}

type ClassifierConfig struct {
	URL     string
	Timeout time.Duration
}

func LoadClassifierConfig() *ClassifierConfig {
	return &ClassifierConfig{
		URL:     getEnv("CLASSIFIER_URL", "http://localhost:8000"),
		Timeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
