package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/cache"
	"github.com/easystock/easystock-api/internal/config"
	"github.com/easystock/easystock-api/internal/database"
	"github.com/easystock/easystock-api/internal/handler"
	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
	"github.com/easystock/easystock-api/internal/worker"
	"github.com/easystock/easystock-api/pkg/linemsg"
)

// main is the application entrypoint for the EasyStock inventory API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting easystock api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize purpose caches
	verifyCache := cache.NewVerifyCache(redisClient, cfg.Line.VerifyCodeTTL)
	statsCache := cache.NewStatsCache(redisClient, cfg.Stock.StatsCacheTTL)

	// 4. Initialize JWT signing
	utils.InitJWT(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// 5. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	listingRepo := repository.NewListingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	festivalRepo := repository.NewFestivalRepository(db)
	bestSellerRepo := repository.NewBestSellerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// 5a. Initialize LINE client; notifications are disabled when the channel
	// credentials are missing, decided once at startup.
	var lineClient *linemsg.Client
	if cfg.Line.Enabled() {
		lineClient = linemsg.NewClient(cfg.Line.ChannelToken)
		log.Info().Msg("LINE notifications enabled")
	} else {
		log.Warn().Msg("LINE channel credentials missing, notifications disabled")
	}

	// 6. Initialize services
	lineSvc := service.NewLineService(lineClient, cfg.Line.Enabled(), notificationRepo, userRepo, productRepo, verifyCache, cfg.Stock.LowStockThreshold)
	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	productSvc := service.NewProductService(productRepo, listingRepo, lineSvc, cfg.Stock.LowStockThreshold)
	issueSvc := service.NewIssueService(issueRepo, lineSvc, cfg.Stock.LowStockThreshold)
	listingSvc := service.NewListingService(listingRepo)
	festivalSvc := service.NewFestivalService(festivalRepo, bestSellerRepo)
	bestSellerSvc := service.NewBestSellerService(bestSellerRepo, festivalRepo, issueRepo, productRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo, issueRepo, productRepo, festivalRepo, statsCache, cfg.Stock.LowStockThreshold)
	taskSvc := service.NewTaskService(taskRepo)
	eventSvc := service.NewEventService(eventRepo)

	// 7. Initialize handlers
	loginLimiter := middleware.NewFailedLoginRateLimiter()
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(db, redisClient, cfg.Line.Enabled()),
		Auth:       handler.NewAuthHandler(authSvc, userSvc, loginLimiter),
		User:       handler.NewUserHandler(userSvc),
		Product:    handler.NewProductHandler(productSvc),
		Issue:      handler.NewIssueHandler(issueSvc),
		Listing:    handler.NewListingHandler(listingSvc),
		Line:       handler.NewLineHandler(lineSvc),
		Webhook:    handler.NewWebhookHandler(lineSvc, cfg.Line.ChannelSecret),
		Festival:   handler.NewFestivalHandler(festivalSvc),
		BestSeller: handler.NewBestSellerHandler(bestSellerSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Task:       handler.NewTaskHandler(taskSvc),
		Event:      handler.NewEventHandler(eventSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewOnlineSweepWorker(userRepo, time.Minute).Start(ctx)
	go worker.NewLowStockWorker(lineSvc, cfg.Worker.LowStockInterval).Start(ctx)
	go worker.NewBestSellerWorker(bestSellerSvc, cfg.Worker.BestSellerInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Product    *handler.ProductHandler
	Issue      *handler.IssueHandler
	Listing    *handler.ListingHandler
	Line       *handler.LineHandler
	Webhook    *handler.WebhookHandler
	Festival   *handler.FestivalHandler
	BestSeller *handler.BestSellerHandler
	Dashboard  *handler.DashboardHandler
	Task       *handler.TaskHandler
	Event      *handler.EventHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	// LINE platform webhook, authenticated by signature instead of JWT
	router.POST("/v1/webhook/line", handlers.Webhook.HandleLine)

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public auth endpoints
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
	}

	// Authenticated routes
	v1 := router.Group("/v1")
	v1.Use(jwtMiddleware.Handle())
	{
		// Session
		v1.POST("/auth/logout", handlers.Auth.Logout)
		v1.POST("/auth/heartbeat", handlers.Auth.Heartbeat)
		v1.GET("/auth/me", handlers.Auth.Me)
		v1.PATCH("/auth/me", handlers.Auth.UpdateMe)
		v1.POST("/auth/change-password", handlers.Auth.ChangePassword)

		// Products
		v1.GET("/products", handlers.Product.List)
		v1.GET("/products/low-stock", handlers.Product.LowStock)
		v1.GET("/products/:id", handlers.Product.Get)
		v1.POST("/products", handlers.Product.Create)
		v1.PATCH("/products/:id", handlers.Product.Update)
		v1.DELETE("/products/:id", handlers.Product.Delete)
		v1.POST("/products/:id/unlist", handlers.Product.Unlist)

		// Categories
		v1.GET("/categories", handlers.Product.ListCategories)
		v1.POST("/categories", handlers.Product.CreateCategory)
		v1.PATCH("/categories/:id", handlers.Product.UpdateCategory)
		v1.DELETE("/categories/:id", handlers.Product.DeleteCategory)

		// Stock issuance
		v1.POST("/issue-products", handlers.Issue.Issue)

		// Listings
		v1.GET("/listings", handlers.Listing.List)
		v1.GET("/listings/:id", handlers.Listing.Get)
		v1.PATCH("/listings/:id", handlers.Listing.Update)
		v1.POST("/listings/:id/unlist", handlers.Listing.Unlist)
		v1.DELETE("/listings/:id", handlers.Listing.Delete)

		// LINE notifications
		v1.POST("/line/connect-code", handlers.Line.ConnectCode)
		v1.GET("/line/status", handlers.Line.Status)
		v1.POST("/line/disconnect", handlers.Line.Disconnect)
		v1.POST("/line/test", handlers.Line.SendTest)
		v1.GET("/line/profile", handlers.Line.Profile)

		// Festivals
		v1.GET("/festivals", handlers.Festival.List)
		v1.GET("/festivals/upcoming", handlers.Festival.Upcoming)
		v1.GET("/festivals/calendar", handlers.Festival.Calendar)
		v1.GET("/festivals/:id", handlers.Festival.Get)
		v1.GET("/festivals/:id/best-sellers", handlers.Festival.BestSellers)

		// Best sellers and analytics
		v1.GET("/best-sellers", handlers.BestSeller.List)
		v1.GET("/best-sellers/top-products", handlers.BestSeller.TopProducts)
		v1.GET("/best-sellers/festival-forecast", handlers.BestSeller.FestivalForecast)
		v1.GET("/best-sellers/category-analysis", handlers.BestSeller.CategoryAnalysis)
		v1.GET("/best-sellers/:id", handlers.BestSeller.Get)

		// Dashboard
		v1.GET("/dashboard/stats", handlers.Dashboard.Stats)
		v1.GET("/dashboard/categories", handlers.Dashboard.CategoryBreakdown)
		v1.GET("/dashboard/top-by-value", handlers.Dashboard.TopByValue)
		v1.GET("/dashboard/movements", handlers.Dashboard.MovementHistory)

		// Tasks
		v1.GET("/tasks", handlers.Task.List)
		v1.GET("/tasks/my", handlers.Task.My)
		v1.GET("/tasks/urgent", handlers.Task.Urgent)
		v1.GET("/tasks/:id", handlers.Task.Get)
		v1.POST("/tasks", handlers.Task.Create)
		v1.PATCH("/tasks/:id", handlers.Task.Update)
		v1.POST("/tasks/:id/start", handlers.Task.Start)
		v1.POST("/tasks/:id/complete", handlers.Task.Complete)
		v1.POST("/tasks/:id/status", handlers.Task.UpdateStatus)
		v1.DELETE("/tasks/:id", handlers.Task.Delete)

		// Custom events
		v1.GET("/events", handlers.Event.List)
		v1.GET("/events/calendar", handlers.Event.Calendar)
		v1.GET("/events/upcoming", handlers.Event.Upcoming)
		v1.GET("/events/upcoming-shared", handlers.Event.UpcomingShared)
		v1.GET("/events/:id", handlers.Event.Get)
		v1.POST("/events", handlers.Event.Create)
		v1.PATCH("/events/:id", handlers.Event.Update)
		v1.DELETE("/events/:id", handlers.Event.Delete)
	}

	// Admin-only routes
	admin := router.Group("/v1")
	admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
	{
		// User management
		admin.GET("/users", handlers.User.List)
		admin.GET("/users/:id", handlers.User.Get)
		admin.PATCH("/users/:id", handlers.User.Update)
		admin.DELETE("/users/:id", handlers.User.Delete)

		// Festival management
		admin.POST("/festivals", handlers.Festival.Create)
		admin.PUT("/festivals/:id", handlers.Festival.Update)
		admin.DELETE("/festivals/:id", handlers.Festival.Delete)
		admin.POST("/festivals/seed", handlers.Festival.Seed)

		// Best seller management
		admin.POST("/best-sellers", handlers.BestSeller.Upsert)
		admin.POST("/best-sellers/bulk", handlers.BestSeller.BulkUpsert)
		admin.DELETE("/best-sellers/:id", handlers.BestSeller.Delete)

		// LINE administration
		admin.GET("/line/connected-users", handlers.Line.ConnectedUsers)
		admin.POST("/line/broadcast", handlers.Line.Broadcast)
		admin.POST("/line/send-to-selected", handlers.Line.SendToSelected)
		admin.POST("/line/notify-low-stock", handlers.Line.LowStockSweep)

		// Admin dashboards
		admin.GET("/dashboard/employee", handlers.Dashboard.EmployeeOverview)
		admin.GET("/dashboard/financial", handlers.Dashboard.FinancialSummary)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
