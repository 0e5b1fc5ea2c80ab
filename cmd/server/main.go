package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nutrilog/backend/docs"
	"github.com/nutrilog/backend/internal/catalog"
	"github.com/nutrilog/backend/internal/config"
	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/handlers"
	mW "github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/services"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title NutriLog Backend API
// @version 1.0
// @description API for meal, exercise and water tracking with goal summaries
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "NutriLog Backend API"
	docs.SwaggerInfo.Description = "API for meal, exercise and water tracking with goal summaries"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize dependencies
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	catalogCfg := config.LoadCatalogConfig()
	cat, err := catalog.Load(catalogCfg.FoodsPath, catalogCfg.ExercisesPath, catalogCfg.StrictLoad)
	if err != nil {
		log.Fatalf("Failed to load reference catalog: %v", err)
	}

	// Initialize services
	store := services.NewPostgresStore(db)
	trendCache := services.NewTrendCache(redisClient)
	entryService := services.NewEntryService(store, cat, trendCache)
	summaryService := services.NewSummaryService(store, trendCache)
	classifierService := services.NewClassifierService(config.LoadClassifierConfig())
	predictHandler := handlers.NewPredictHandler(classifierService, cat)
	catalogHandler := handlers.NewCatalogHandler(cat)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Static file server for food images
	r.Handle("/static/food-images/*", http.StripPrefix("/static/food-images/",
		mW.StaticFileServer("./static/food-images")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", predictHandler.Predict)

		r.Post("/meals", entryService.LogMeal)
		r.Post("/exercises", entryService.LogExercise)
		r.Post("/water", entryService.LogWater)
		r.Delete("/entries/{entryId}", entryService.DeleteEntry)

		r.Get("/users/{userId}/summary", summaryService.DailySummary)
		r.Get("/users/{userId}/trend", summaryService.WeeklyTrend)
		r.Get("/users/{userId}/macros", summaryService.MacroDistribution)
		r.Get("/users/{userId}/goal", summaryService.GoalSummary)
		r.Get("/users/{userId}/water", summaryService.WaterStatus)

		r.Get("/foods/search", catalogHandler.SearchFood)
		r.Get("/exercises/search", catalogHandler.SearchExercise)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
