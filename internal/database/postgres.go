package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

var db *sql.DB

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// GetConfig returns database configuration with defaults
func GetConfig() *DBConfig {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.name", "nutrilog")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", time.Minute*5)

	return &DBConfig{
		Host:            viper.GetString("database.host"),
		Port:            viper.GetString("database.port"),
		User:            viper.GetString("database.user"),
		Password:        viper.GetString("database.password"),
		Name:            viper.GetString("database.name"),
		SSLMode:         viper.GetString("database.ssl_mode"),
		MaxOpenConns:    viper.GetInt("database.max_open_conns"),
		MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: viper.GetDuration("database.conn_max_lifetime"),
	}
}

// schema creates the ledger tables on first run. The ledger table is a
// single flat record for both entry kinds; unused columns stay at their
// zero value for the other kind.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ledger (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		kind            TEXT NOT NULL,
		entry_ts        TIMESTAMPTZ NOT NULL,
		food_name       TEXT NOT NULL DEFAULT '',
		calories        INTEGER NOT NULL DEFAULT 0,
		protein_g       INTEGER NOT NULL DEFAULT 0,
		carb_g          INTEGER NOT NULL DEFAULT 0,
		fat_g           INTEGER NOT NULL DEFAULT 0,
		portion_unit    TEXT NOT NULL DEFAULT '',
		meal_slot       TEXT NOT NULL DEFAULT '',
		activity_name   TEXT NOT NULL DEFAULT '',
		duration_min    INTEGER NOT NULL DEFAULT 0,
		calories_burned INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_user_ts ON ledger (user_id, entry_ts)`,
	`CREATE TABLE IF NOT EXISTS water_log (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		amount_ml  INTEGER NOT NULL,
		date_key   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_water_user_date ON water_log (user_id, date_key)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id         TEXT PRIMARY KEY,
		weight_kg       DOUBLE PRECISION NOT NULL DEFAULT 0,
		target_calories INTEGER NOT NULL DEFAULT 0
	)`,
}

// InitDB initializes the database connection
func InitDB() (*sql.DB, error) {
	config := GetConfig()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.Name, config.SSLMode,
	)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test connection
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("error creating schema: %w", err)
		}
	}

	log.Println("Database connection established")
	return db, nil
}

// GetDB returns the database connection
func GetDB() *sql.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// InitDatabase initializes database with error handling
func InitDatabase() *sql.DB {
	db, err := InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return db
}
