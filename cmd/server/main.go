package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/foodoo/foodoo/internal/auth"
	"github.com/foodoo/foodoo/internal/config"
	"github.com/foodoo/foodoo/internal/database"
	"github.com/foodoo/foodoo/internal/events"
	"github.com/foodoo/foodoo/internal/health"
	"github.com/foodoo/foodoo/internal/models"
	"github.com/foodoo/foodoo/internal/notify"
	"github.com/foodoo/foodoo/internal/orders"
	"github.com/foodoo/foodoo/internal/restaurants"
	"github.com/foodoo/foodoo/internal/token"
	"github.com/foodoo/foodoo/internal/users"
	"github.com/foodoo/foodoo/internal/worker"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.Env == "development" {
		if err := database.SeedDevData(db); err != nil {
			log.Printf("WARNING: Failed to seed dev data: %v", err)
		}
	}

	if cfg.TokenEncryptionKey != "" {
		if err := models.InitEncryption(cfg.TokenEncryptionKey); err != nil {
			log.Fatalf("Failed to initialize token encryption: %v", err)
		}
	} else {
		log.Println("WARNING: TOKEN_ENCRYPTION_KEY not set, OAuth tokens will be stored in plaintext")
	}

	if _, err := restaurants.InitCatalog(db, cfg.RestaurantDir); err != nil {
		log.Printf("WARNING: Restaurant catalog not loaded: %v", err)
	}

	tm, err := token.NewManager(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	auth.InitProviders(cfg)

	orderService := orders.NewService(orders.NewRepository(db))

	// Redis-backed pieces are optional; without REDIS_URL the API still
	// serves orders, it just skips events and background notifications.
	var stops []func()
	if cfg.RedisURL != "" {
		publisher, err := events.NewPublisher(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to create event publisher: %v", err)
		}
		orderService.SetEventPublisher(publisher)
		stops = append(stops, func() { publisher.Close() })

		stopConsumer, err := events.StartKitchenConsumer(cfg.RedisURL, db)
		if err != nil {
			log.Fatalf("Failed to start kitchen consumer: %v", err)
		}
		stops = append(stops, stopConsumer)

		if err := worker.InitClient(cfg.RedisURL); err != nil {
			log.Fatalf("Failed to initialize task client: %v", err)
		}
		orderService.SetNotifier(orders.NotifierFunc(worker.EnqueueOrderNotification))
		stops = append(stops, func() { worker.CloseClient() })

		notifyClient := notify.NewClient(cfg.OrderWebhookURL, cfg.OrderWebhookSecret, cfg.OrderWebhookStub)
		stopWorker, err := worker.Start(cfg, db, notifyClient)
		if err != nil {
			log.Fatalf("Failed to start worker: %v", err)
		}
		stops = append(stops, stopWorker)

		stopScheduler, err := worker.StartScheduler(cfg)
		if err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		stops = append(stops, stopScheduler)
	} else {
		log.Println("REDIS_URL not set, running without events or background tasks")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/health", gin.WrapF(health.Handler))

	api := r.Group("/api")
	auth.RegisterRoutes(api.Group("/auth"), db, tm, cfg)
	restaurants.RegisterRoutes(api.Group("/restaurants"), db)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(tm))
	users.RegisterRoutes(protected.Group("/user"), db, cfg)
	orders.NewHandler(orderService).RegisterRoutes(protected.Group("/orders"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	for _, stop := range stops {
		stop()
	}

	if err := database.Close(db); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("Shutdown complete")
}
