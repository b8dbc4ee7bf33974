package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cybele-backend/internal/blobstore"
	"cybele-backend/internal/config"
	"cybele-backend/internal/handlers"
	"cybele-backend/internal/repository"
	"cybele-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Create schema and seed data
	if err := repository.InitSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize schema")
	}

	// Initialize repositories
	pointRepo := repository.NewPointRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postcardRepo := repository.NewPostcardRepository(db)

	if err := friendRepo.SeedIfEmpty(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed friends")
	}

	// Initialize blob store
	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create blob store")
	}

	// Initialize services
	eventHub := services.NewEventHub()
	pointService := services.NewPointService(pointRepo, blobs, eventHub)
	friendService := services.NewFriendService(friendRepo, blobs, eventHub)
	postcardService := services.NewPostcardService(postcardRepo, blobs, eventHub)

	// Initialize handlers
	pointHandler := handlers.NewPointHandler(pointService)
	friendHandler := handlers.NewFriendHandler(friendService)
	postcardHandler := handlers.NewPostcardHandler(postcardService)
	wsHandler := handlers.NewWebSocketHandler(eventHub)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/custom-points", pointHandler.GetPoints)
		r.Post("/custom-points", pointHandler.CreatePoint)
		r.Put("/custom-points/{id}", pointHandler.UpdatePoint)
		r.Delete("/custom-points/{id}", pointHandler.DeletePoint)

		r.Get("/friends", friendHandler.GetFriends)
		r.Post("/friends", friendHandler.CreateFriend)

		r.Get("/postcards", postcardHandler.GetPostcards)
		r.Post("/postcards", postcardHandler.CreatePostcard)
		r.Delete("/postcards/{id}", postcardHandler.DeletePostcard)
		r.Put("/postcards/{id}/like", postcardHandler.LikePostcard)
	})

	// WebSocket change feed
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Serve stored blobs when they live on the local disk
	if cfg.Storage.Backend == "disk" {
		fileServer := http.StripPrefix("/"+cfg.Storage.Root+"/", http.FileServer(http.Dir(cfg.Storage.Root)))
		r.Get("/"+cfg.Storage.Root+"/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newBlobStore builds the configured storage backend
func newBlobStore(cfg *config.Config) (blobstore.Store, error) {
	switch cfg.Storage.Backend {
	case "disk":
		return blobstore.NewDisk(cfg.Storage.Root), nil
	case "s3":
		return blobstore.NewS3(
			context.Background(),
			cfg.AWS.Region,
			cfg.AWS.S3Bucket,
			cfg.AWS.AccessKey,
			cfg.AWS.SecretKey,
			cfg.AWS.Endpoint,
		)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
