package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/warikan-app/warikan/docs"
	"github.com/warikan-app/warikan/internal/auth"
	"github.com/warikan-app/warikan/internal/config"
	"github.com/warikan-app/warikan/internal/database"
	"github.com/warikan-app/warikan/internal/expense"
	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/invitation"
	"github.com/warikan-app/warikan/internal/notification"
	"github.com/warikan-app/warikan/internal/realtime"
	"github.com/warikan-app/warikan/internal/settlement"
	"github.com/warikan-app/warikan/internal/storage"
	"github.com/warikan-app/warikan/internal/user"
	"github.com/warikan-app/warikan/pkg/logging"
	"github.com/warikan-app/warikan/pkg/middleware"
)

// @title           Warikan API
// @version         1.0
// @description     Group expense splitting service with invitations, settlement and realtime feeds.
// @BasePath        /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	hub := realtime.NewHub()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authMW := middleware.Auth(jwtManager)

	var uploader user.AvatarUploader
	if cfg.SupabaseURL != "" {
		uploader = storage.NewSupabaseUploader(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	} else {
		slog.Warn("SUPABASE_URL not set, avatar upload disabled")
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, uploader)
	userHandler := user.NewHandler(userService)

	// Auth feature
	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, userRepo, jwtManager)
	authHandler := auth.NewHandler(authService, authMW)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, hub)
	groupHandler := group.NewHandler(groupService, cfg.PublicBaseURL)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, hub, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementService := settlement.NewService(groupService, expenseRepo)
	settlementHandler := settlement.NewHandler(settlementService)

	// Invitation feature
	invitationRepo := invitation.NewRepository(db)
	invitationService := invitation.NewService(invitationRepo, groupService, userRepo, notificationService, hub)
	invitationHandler := invitation.NewHandler(invitationService)

	// Realtime feeds
	realtimeHandler := realtime.NewHandler(hub, jwtManager)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes(expenseHandler.Routes(), settlementHandler.GroupSummary))
			r.Mount("/invitations", invitationHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	r.Mount("/ws", realtimeHandler.Routes())

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
