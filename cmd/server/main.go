package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/katzAmit/Flashcards-backend/internal/auth"
	"github.com/katzAmit/Flashcards-backend/internal/flashcard"
	"github.com/katzAmit/Flashcards-backend/internal/marathon"
	"github.com/katzAmit/Flashcards-backend/internal/quiz"
	"github.com/katzAmit/Flashcards-backend/internal/stats"
	"github.com/katzAmit/Flashcards-backend/pkg/cache"
	"github.com/katzAmit/Flashcards-backend/pkg/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := database.SeedDemoData(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	flashcardRepo := flashcard.NewRepository(db)
	quizRepo := quiz.NewRepository(db)
	marathonRepo := marathon.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	authService := auth.NewService(authRepo, jwtSecret)
	flashcardService := flashcard.NewService(flashcardRepo, redisCache)
	quizService := quiz.NewService(quizRepo, redisCache, rng)
	marathonService := marathon.NewService(marathonRepo, rng)
	statsService := stats.NewService(statsRepo, redisCache)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	flashcardHandler := flashcard.NewHandler(flashcardService)
	quizHandler := quiz.NewHandler(quizService)
	marathonHandler := marathon.NewHandler(marathonService)
	statsHandler := stats.NewHandler(statsService)

	// Setup router
	router := mux.NewRouter()

	// CORS middleware configuration
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	handler := corsMiddleware.Handler(router)

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Everything below requires an authenticated user
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.JWTMiddleware(jwtSecret))

	apiRouter.HandleFunc("/flashcards", flashcardHandler.ListFlashcards).Methods("GET")
	apiRouter.HandleFunc("/flashcards", flashcardHandler.CreateFlashcard).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/flashcards/{cardID}", flashcardHandler.GetFlashcard).Methods("GET")
	apiRouter.HandleFunc("/flashcards/{cardID}", flashcardHandler.UpdateFlashcard).Methods("PUT", "OPTIONS")
	apiRouter.HandleFunc("/flashcards/{cardID}", flashcardHandler.DeleteFlashcard).Methods("DELETE", "OPTIONS")
	apiRouter.HandleFunc("/categories", flashcardHandler.ListCategories).Methods("GET")

	apiRouter.HandleFunc("/quizzes", quizHandler.GenerateQuizzes).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/submit", quizHandler.SubmitQuiz).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{quizID}", quizHandler.GetQuiz).Methods("GET")

	apiRouter.HandleFunc("/marathons", marathonHandler.CreateMarathon).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/marathons", marathonHandler.ListMarathons).Methods("GET")
	apiRouter.HandleFunc("/marathons/{marathonID}/today", marathonHandler.GetDueQuiz).Methods("GET")

	apiRouter.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
