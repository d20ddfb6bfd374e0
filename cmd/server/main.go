package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tracker/internal/config"
	"tracker/internal/database"
	"tracker/internal/handlers"
	"tracker/internal/middleware"
	"tracker/internal/repository"
	"tracker/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	sweeper := services.NewSweepService(taskRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, activityRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, sweeper, activityRepo)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	adminHandler := handlers.NewAdminHandler(authService)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("tracker_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", middleware.RequireCSRF(), projectHandler.CreateProject)
			projects.PATCH("/:id", middleware.RequireCSRF(), projectHandler.RenameProject)
			projects.DELETE("/:id", middleware.RequireCSRF(), projectHandler.DeleteProject)
			projects.POST("/:id/members", middleware.RequireCSRF(), projectHandler.AddMember)
			projects.DELETE("/:id/members", middleware.RequireCSRF(), projectHandler.RemoveMember)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/missed", taskHandler.ListMissedTasks)
			tasks.POST("", middleware.RequireCSRF(), taskHandler.CreateTask)
			tasks.PATCH("/:id/title", middleware.RequireCSRF(), taskHandler.UpdateTitle)
			tasks.PATCH("/:id/due-date", middleware.RequireCSRF(), taskHandler.UpdateDueDate)
			tasks.POST("/:id/assign", middleware.RequireCSRF(), taskHandler.AssignTask)
			tasks.POST("/:id/unassign", middleware.RequireCSRF(), taskHandler.UnassignTask)
			tasks.POST("/:id/toggle", middleware.RequireCSRF(), taskHandler.ToggleTask)
			tasks.DELETE("/:id", middleware.RequireCSRF(), taskHandler.DeleteTask)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.PATCH("/users/:id/active", middleware.RequireCSRF(), adminHandler.SetUserActive)
		}
	}

	corsOptions := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.CORSOrigins
	}
	handler := cors.New(corsOptions).Handler(r)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
