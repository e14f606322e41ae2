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

	"kitarchive/internal/auth"
	"kitarchive/internal/config"
	"kitarchive/internal/database"
	"kitarchive/internal/handlers"
	"kitarchive/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize services
	userService := services.NewUserService(db, cfg.Moderation.ModeratorEmails)
	estimationService := services.NewEstimationService()
	submissionService := services.NewSubmissionService(db, cfg.Moderation.ApprovalThreshold)
	reportService := services.NewReportService(db, cfg.Moderation.ApprovalThreshold)
	kitService := services.NewKitService(db)
	entityService := services.NewEntityService(db)
	collectionService := services.NewCollectionService(db)
	wishlistService := services.NewWishlistService(db)
	reviewService := services.NewReviewService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	estimationHandler := handlers.NewEstimationHandler(estimationService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, userService)
	reportHandler := handlers.NewReportHandler(reportService, userService)
	kitHandler := handlers.NewKitHandler(kitService, reviewService)
	entityHandler := handlers.NewEntityHandler(entityService)
	collectionHandler := handlers.NewCollectionHandler(collectionService, wishlistService)
	reviewHandler := handlers.NewReviewHandler(reviewService, userService)
	adminHandler := handlers.NewAdminHandler(db)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public catalog routes
	router.GET("/api/kits", kitHandler.ListKits)
	router.GET("/api/kits/:id", kitHandler.GetKit)
	router.GET("/api/versions", kitHandler.ListVersions)
	router.GET("/api/versions/:id", kitHandler.GetVersion)
	router.GET("/api/versions/:id/reviews", reviewHandler.ListByVersion)
	router.GET("/api/teams", entityHandler.ListTeams)
	router.GET("/api/teams/:id", entityHandler.GetTeam)
	router.GET("/api/leagues", entityHandler.ListLeagues)
	router.GET("/api/leagues/:id", entityHandler.GetLeague)
	router.GET("/api/brands", entityHandler.ListBrands)
	router.GET("/api/brands/:id", entityHandler.GetBrand)
	router.GET("/api/players", entityHandler.ListPlayers)
	router.GET("/api/players/:id", entityHandler.GetPlayer)
	router.GET("/api/stats", adminHandler.GetStats)
	router.GET("/api/users/by-username/:username", userHandler.GetByUsername)
	router.GET("/api/users/:id/profile", userHandler.GetProfile)

	// Estimation is public: estimates are advisory and need no account
	router.POST("/api/estimate", estimationHandler.Estimate)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Profile
		api.PUT("/users/profile", userHandler.UpdateProfile)

		// Catalog writes (trusted path)
		api.POST("/kits", kitHandler.CreateKit)
		api.POST("/versions", kitHandler.CreateVersion)
		api.POST("/teams", entityHandler.CreateTeam)
		api.POST("/teams/pending", entityHandler.CreateTeamPending)
		api.PUT("/teams/:id", entityHandler.UpdateTeam)
		api.POST("/leagues", entityHandler.CreateLeague)
		api.PUT("/leagues/:id", entityHandler.UpdateLeague)
		api.POST("/brands", entityHandler.CreateBrand)
		api.PUT("/brands/:id", entityHandler.UpdateBrand)
		api.POST("/players", entityHandler.CreatePlayer)
		api.PUT("/players/:id", entityHandler.UpdatePlayer)

		// Submissions and votes
		api.POST("/submissions", submissionHandler.Create)
		api.GET("/submissions", submissionHandler.List)
		api.GET("/submissions/mine", submissionHandler.MyContributions)
		api.GET("/submissions/:id", submissionHandler.Get)
		api.POST("/submissions/:id/vote", submissionHandler.Vote)

		// Reports and votes
		api.POST("/reports", reportHandler.Create)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/mine", reportHandler.MyContributions)
		api.GET("/reports/:id", reportHandler.Get)
		api.POST("/reports/:id/vote", reportHandler.Vote)

		// Collection
		api.GET("/collections", collectionHandler.List)
		api.POST("/collections", collectionHandler.Add)
		api.GET("/collections/categories", collectionHandler.Categories)
		api.GET("/collections/stats", collectionHandler.Stats)
		api.GET("/collections/category-stats", collectionHandler.CategoryStats)
		api.PUT("/collections/:id", collectionHandler.Update)
		api.DELETE("/collections/:id", collectionHandler.Remove)

		// Wishlist
		api.GET("/wishlist", collectionHandler.ListWishlist)
		api.POST("/wishlist", collectionHandler.AddToWishlist)
		api.DELETE("/wishlist/:id", collectionHandler.RemoveFromWishlist)

		// Reviews
		api.POST("/reviews", reviewHandler.Create)
		api.DELETE("/reviews/:id", reviewHandler.Delete)

		// Moderation (manual status override)
		moderation := api.Group("")
		moderation.Use(auth.ModeratorMiddleware())
		{
			moderation.PUT("/submissions/:id/status", submissionHandler.SetStatus)
			moderation.PUT("/reports/:id/status", reportHandler.SetStatus)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
