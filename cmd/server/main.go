package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-redis/redis/v8"

	"github.com/vedran77/budgeter/internal/auth"
	"github.com/vedran77/budgeter/internal/config"
	"github.com/vedran77/budgeter/internal/database"
	postgresrepo "github.com/vedran77/budgeter/internal/repository/postgres"
	"github.com/vedran77/budgeter/internal/service"
	"github.com/vedran77/budgeter/internal/session"
	"github.com/vedran77/budgeter/internal/storage"
	"github.com/vedran77/budgeter/internal/transport/http/handlers"
	"github.com/vedran77/budgeter/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, cfg); err != nil {
		log.Fatal(err)
	}
	log.Println("Connected to database")

	// Redis (server-side sessions)
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal(fmt.Errorf("unable to ping redis: %w", err))
	}
	defer redisClient.Close()

	// Blob storage (avatar binaries)
	blobStore, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	spendingRepo := postgresrepo.NewSpendingRepo(pool)
	avatarRepo := postgresrepo.NewAvatarRepo(pool)

	// Auth primitives
	hasher := auth.NewHasher()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	sessions := session.NewRedisStore(redisClient)

	// Services
	authService := service.NewAuthService(userRepo, spendingRepo, sessions, hasher, tokens)
	spendingService := service.NewSpendingService(spendingRepo)
	avatarService := service.NewAvatarService(avatarRepo, blobStore)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	spendingHandler := handlers.NewSpendingHandler(spendingService)
	avatarHandler := handlers.NewAvatarHandler(avatarService)

	// Auth middleware
	bearer := middleware.Auth(tokens)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)

	// Protected - account
	mux.Handle("GET /api/v1/profile", bearer(http.HandlerFunc(authHandler.GetProfile)))
	mux.Handle("PATCH /api/v1/profile/budget", bearer(http.HandlerFunc(authHandler.ChangeBudget)))
	mux.Handle("DELETE /api/v1/profile", bearer(http.HandlerFunc(authHandler.DeleteAccount)))

	// Protected - spendings
	mux.Handle("POST /api/v1/spendings", bearer(http.HandlerFunc(spendingHandler.Add)))
	mux.Handle("GET /api/v1/spendings", bearer(http.HandlerFunc(spendingHandler.List)))

	// Protected - avatar
	mux.Handle("POST /api/v1/avatar", bearer(http.HandlerFunc(avatarHandler.Upload)))
	mux.Handle("GET /api/v1/avatar", bearer(http.HandlerFunc(avatarHandler.Get)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.CORSOrigin)(mux)))
}
