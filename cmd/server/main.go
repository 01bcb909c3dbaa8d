package main // Entry point package

import (
	"context" // bounds the startup admin seed
	"log"     // Logging library
	"time"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/marketplace-reputation/internal/config"
	"github.com/iliyamo/marketplace-reputation/internal/database"
	"github.com/iliyamo/marketplace-reputation/internal/handler"
	"github.com/iliyamo/marketplace-reputation/internal/mailer"
	"github.com/iliyamo/marketplace-reputation/internal/middleware"
	"github.com/iliyamo/marketplace-reputation/internal/queue"
	"github.com/iliyamo/marketplace-reputation/internal/repository"
	"github.com/iliyamo/marketplace-reputation/internal/router"
	"github.com/iliyamo/marketplace-reputation/internal/service"
	"github.com/iliyamo/marketplace-reputation/internal/store"
	"github.com/iliyamo/marketplace-reputation/internal/utils"
)

func main() {
	// Load .env if present; in production the variables come from the
	// environment directly and a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Seed the administrator account when configured.  The insert is a
	// no-op if the account already exists.
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		cancel()
	}

	// Redis backs the ephemeral store and the rate limiter.  When it is
	// unreachable the service still starts: tokens and pending comments
	// fall back to an in-process store and the limiter passes through.
	rdb := config.NewRedisClient()
	var cache store.Store
	if rdb != nil {
		cache = store.NewRedis(rdb)
	} else {
		log.Println("redis unavailable, using in-memory ephemeral store")
		cache = store.NewMemory()
	}

	codec := utils.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.AccessTTLMin)*time.Minute)
	st := repository.NewStore(db)
	mail := mailer.NewQueue()

	ratings := service.NewRatingService(st)
	comments := service.NewCommentService(st, ratings)
	relay := service.NewRelayService(cache, comments, cfg.PendingTTL)
	auth := service.NewAuthService(st, cache, codec, mail, relay, cfg.BaseURL, cfg.BcryptCost, cfg.ConfirmTokenTTL, cfg.ResetCodeTTL)

	// The email consumer drains the queue in the background and keeps
	// retrying if the broker is down.
	go func() {
		if err := queue.StartEmailConsumer(); err != nil {
			log.Printf("email consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.Use(middleware.RateLimit(rdb, config.LoadRateLimitConfig()))

	authH := handler.NewAuthHandler(auth)
	commentH := handler.NewCommentHandler(auth, comments, relay)
	sellerH := handler.NewSellerHandler(ratings)

	router.RegisterRoutes(e) // Register application routes
	router.RegisterAuth(e, authH)
	router.RegisterAdmin(e, authH, commentH, codec)
	router.RegisterSellers(e, sellerH, commentH, codec)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
