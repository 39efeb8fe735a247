package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/collab-dashboard-api/internal/config"
	"github.com/yukikurage/collab-dashboard-api/internal/constants"
	"github.com/yukikurage/collab-dashboard-api/internal/database"
	"github.com/yukikurage/collab-dashboard-api/internal/handlers"
	"github.com/yukikurage/collab-dashboard-api/internal/middleware"
	"github.com/yukikurage/collab-dashboard-api/internal/repository"
	sessionstore "github.com/yukikurage/collab-dashboard-api/internal/session"
	"github.com/yukikurage/collab-dashboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The index pass checks pg_indexes and only applies to postgres
	if cfg.DBDriver == "postgres" {
		if err := database.MigrateDatabase(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Warm the (user, member) route pair cache; unknown pairs still resolve
	// on demand
	if err := middleware.WarmMemberPairs(memberRepo); err != nil {
		log.Fatalf("Failed to warm member route pairs: %v", err)
	}

	// Per-session dashboard snapshots
	snapshots := sessionstore.NewStore()

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Services
	authService := services.NewAuthService(userRepo)
	dashboardService := services.NewDashboardService(userRepo, memberRepo, projectRepo, messageRepo, snapshots)
	memberService := services.NewMemberService(memberRepo, projectRepo, snapshots)
	projectService := services.NewProjectService(projectRepo, memberRepo, snapshots)
	suggestionService := services.NewSuggestionService(aiService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, snapshots)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, snapshots)
	projectHandler := handlers.NewProjectHandler(projectService, memberService)
	messageHandler := handlers.NewMessageHandler(messageRepo, memberService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, memberService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Collab Dashboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Dashboard routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/:user_id/members/:member_id/dashboard", middleware.RequireMemberAccess(memberRepo), dashboardHandler.GetDashboard)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/panels", dashboardHandler.GetPanels)
			dashboard.POST("/panels/:panel/toggle", dashboardHandler.TogglePanel)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("/join", projectHandler.JoinProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/leave", projectHandler.LeaveProject)
			projects.POST("/:id/regenerate-code", projectHandler.RegenerateCode)
			projects.POST("/:id/tasks", projectHandler.CreateTask)
			projects.GET("/:id/messages", messageHandler.ListMessages)
			projects.POST("/:id/messages", messageHandler.PostMessage)
		}

		// Suggestion drafting (protected)
		suggestions := api.Group("/suggestions")
		suggestions.Use(middleware.RequireAuth())
		{
			suggestions.POST("/draft", suggestionHandler.DraftSuggestions)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
