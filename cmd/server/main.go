package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/placepulse/notifier/internal/dispatch"
	"github.com/placepulse/notifier/internal/feed"
	"github.com/placepulse/notifier/internal/push"
	"github.com/placepulse/notifier/internal/relay"
	"github.com/placepulse/notifier/internal/repositories"
	"github.com/placepulse/notifier/internal/router"
	"github.com/placepulse/notifier/internal/rules"
	"github.com/placepulse/notifier/pkg/config"
	"github.com/placepulse/notifier/pkg/firebase"
	"github.com/placepulse/notifier/validators"
)

const (
	dispatchWorkers    = 4
	dispatchQueueDepth = 256
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	mongoDB := db.Mongo.Database(cfg.MongoDB)

	// Repositories and collaborators
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	notifRepo := repositories.NewMongoNotificationRepository(mongoDB)
	contentRepo := repositories.NewContentRepository(mongoDB)
	sender := push.NewFCMSender(firebaseApp.MessagingClient)

	// Dispatch pipeline
	dispatcher := dispatch.NewDispatcher(userRepo, notifRepo, sender)
	pool := dispatch.NewPool(dispatcher, dispatchWorkers, dispatchQueueDepth)
	pool.Start(ctx)
	defer pool.Stop()

	// Change feed relay
	engine := rules.NewEngine(contentRepo, rules.NewEngagementCache())
	adapter := feed.NewAdapter(mongoDB)
	rly := relay.New(adapter, engine, pool)
	if err := rly.Start(ctx); err != nil {
		log.Fatalf("Failed to start change feed relay: %v", err)
	}
	defer rly.Stop()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg.ServiceName, userRepo, notifRepo, dispatcher)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(cfg.Host + ":" + cfg.Port))
}
