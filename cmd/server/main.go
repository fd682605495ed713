package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/scamwatch/backend/internal/config"
	"github.com/scamwatch/backend/internal/handlers"
	appMiddleware "github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/scoring"
	"github.com/scamwatch/backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Persistence
	reportService, err := services.NewMongoReportService(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer reportService.Close(context.Background())

	userService, err := services.NewMongoUserService(ctx, reportService.Database())
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}
	notificationService, err := services.NewMongoNotificationService(ctx, reportService.Database())
	if err != nil {
		log.Fatalf("Failed to initialize notification service: %v", err)
	}
	contactService, err := services.NewMongoContactService(ctx, reportService.Database())
	if err != nil {
		log.Fatalf("Failed to initialize contact service: %v", err)
	}

	// Firebase Auth (server-side verification of ID tokens)
	authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsJSON: cfg.FirebaseCredentialsJSON,
	})
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
	}

	// FCM push delivery; nil when Firebase is not configured.
	messagingClient, err := services.NewMessagingClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsJSON)
	if err != nil {
		log.Printf("Warning: failed to initialize FCM client: %v", err)
	}
	var sender services.MessageSender
	if messagingClient != nil {
		sender = messagingClient
	}
	notifier := services.NewNotifier(notificationService, userService, sender)

	// Risk scoring engine backed by the report history plus the external
	// reputation source when one is configured.
	engine := scoring.NewEngine(reportService)
	var reputation scoring.ReputationChecker = scoring.StubReputationChecker{}
	if cfg.ReputationEndpoint != "" {
		reputation = scoring.NewHTTPReputationChecker(cfg.ReputationEndpoint, cfg.ReputationAPIKey)
	}
	scorer := services.NewReportScorer(engine, reputation)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration, cfg.AdminKey)
	reportHandler := handlers.NewReportHandler(reportService, scorer, notifier)
	adminHandler := handlers.NewAdminHandler(reportService, contactService, notifier)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/contact", contactHandler.SubmitMessage)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Auth(authClient, userService, cfg.JWTSecret))

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", reportHandler.ListReports)
				r.Post("/", reportHandler.CreateReport)

				r.Route("/{reportId}", func(r chi.Router) {
					r.Get("/", reportHandler.GetReport)
					r.Post("/vote", reportHandler.VoteReport)
				})
			})

			r.Get("/users/me", authHandler.GetProfile)
			r.Put("/users/me", authHandler.UpdateProfile)

			r.Get("/notifications", notificationHandler.ListNotifications)
			r.Post("/notifications/read", notificationHandler.MarkRead)

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(appMiddleware.RequireAdmin)

				r.Get("/dashboard", adminHandler.Dashboard)
				r.Get("/contact-messages", adminHandler.ListContactMessages)
				r.Put("/reports/{reportId}", adminHandler.UpdateReportStatus)
				r.Put("/reports/{reportId}/escalate", adminHandler.EscalateReport)
			})
		})
	})

	log.Printf("ScamWatch API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
