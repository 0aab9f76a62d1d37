package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nfl-pickem-go/config"
	"nfl-pickem-go/database"
	"nfl-pickem-go/handlers"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/middleware"
	"nfl-pickem-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Output:      os.Stdout,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	// Repositories
	gameRepo := database.NewMongoGameRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	awardRepo := database.NewMongoAwardRepository(db)
	userRepo := database.NewMongoUserRepository(db)

	// Scoring engine
	recomputeService := services.NewGameRecomputeService(gameRepo, pickRepo)
	awardsService := services.NewWeeklyAwardsService(gameRepo, pickRepo, awardRepo)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)

	// Periodic reconciliation sweep
	if cfg.App.SweepEnabled {
		sweep := services.NewSweepService(gameRepo, recomputeService, awardsService,
			cfg.App.CurrentSeason, cfg.App.SweepInterval)
		sweep.Start()
		defer sweep.Stop()
	}

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(authService)
	scoringHandler := handlers.NewScoringHandler(recomputeService, awardsService,
		pickRepo, awardRepo, cfg.App.CurrentSeason)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := mux.NewRouter()
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/leaderboard", scoringHandler.GetLeaderboard).Methods("GET")
	r.HandleFunc("/api/awards", scoringHandler.GetAwards).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/games/{id}/recompute", scoringHandler.RecomputeGame).Methods("POST")
	admin.HandleFunc("/weeks/{week}/awards", scoringHandler.ProcessWeekAwards).Methods("POST")
	admin.HandleFunc("/weeks/{week}/awards/preview", scoringHandler.PreviewWeekAwards).Methods("GET")

	addr := cfg.GetServerAddress()
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logging.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests so the
	// deferred sweep stop and database close still run
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("Server shutdown error: %v", err)
	}
}
