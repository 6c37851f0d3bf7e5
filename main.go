package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"TASKS_COLLECTION",
		"SUBTASKS_COLLECTION",
		"FOCUS_LOGS_COLLECTION",
		"PROFILES_COLLECTION",
		"DIAGNOSIS_COLLECTION",
		"SORT_LOGS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	clock := utils.RealClock{}

	// Repositories
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	focusLogsRepo := repository.GetFocusLogsRepo(utils.MongoClient)
	profilesRepo := repository.GetProfilesRepo(utils.MongoClient)
	sortLogsRepo := repository.GetSortLogsRepo(utils.MongoClient)
	usersRepo := repository.GetUsersRepo(utils.MongoClient)

	// Services
	taskService := usecase.NewTaskService(tasksRepo, focusLogsRepo, clock)
	rankingService := usecase.NewRankingService(tasksRepo, profilesRepo, sortLogsRepo, clock)
	heatmapService := usecase.NewHeatmapService(focusLogsRepo, clock, time.Local)
	profileService := usecase.NewProfileService(profilesRepo)
	summaryService := usecase.NewSummaryService(focusLogsRepo, clock, time.Local)
	userService := usecase.NewUserService(usersRepo, clock)

	// Optional Redis cache for heatmap grids; absent Redis means every
	// lookup recomputes.
	var heatmapCache *services.HeatmapCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		ttl := time.Duration(utils.GetEnvAsInt("HEATMAP_CACHE_TTL", 300)) * time.Second
		cache, err := services.NewHeatmapCache(redisURL, ttl)
		if err != nil {
			log.Printf("Heatmap cache disabled: %v", err)
		} else {
			heatmapCache = cache
			log.Println("Heatmap cache connected")
		}
	}

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	rankHandler := handler.NewRankHandler(rankingService)
	heatmapHandler := handler.NewHeatmapHandler(heatmapService, heatmapCache)
	profileHandler := handler.NewProfileHandler(profileService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/debug/system", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		})
	})

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetUserTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)

			tasks.POST("/:id/start", taskHandler.StartTask)
			tasks.POST("/:id/pause", taskHandler.PauseTask)
			tasks.POST("/:id/resume", taskHandler.ResumeTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.GET("/:id/focus", taskHandler.GetTaskFocusTotal)

			tasks.POST("/:id/subtasks/bulk", taskHandler.BulkUpsertSubtasks)
		}

		subtasks := protected.Group("/subtasks")
		{
			subtasks.POST("/:id/start", taskHandler.StartSubtask)
			subtasks.POST("/:id/pause", taskHandler.PauseSubtask)
			subtasks.POST("/:id/resume", taskHandler.ResumeSubtask)
			subtasks.POST("/:id/complete", taskHandler.CompleteSubtask)
		}

		protected.GET("/rank", rankHandler.GetRankedTasks)

		protected.GET("/heatmap", heatmapHandler.GetWeekHeatmap)
		protected.GET("/heatmap/average", heatmapHandler.GetAverageHeatmap)

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/diagnosis", profileHandler.SubmitDiagnosis)

		protected.GET("/summary", summaryHandler.GetSummary)
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	utils.InitMongoClient(
		dbConfig.URI,
		dbConfig.MaxPoolSize,
		dbConfig.MinPoolSize,
		dbConfig.MaxConnIdleTime,
		dbConfig.RetryWrites,
	)

	if err := repository.SetupIndexes(utils.MongoClient); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
