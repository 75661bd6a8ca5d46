package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/config"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/handlers"
	"github.com/officelayout/directory-backend/internal/middleware"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/officelayout/directory-backend/internal/services"
	"github.com/officelayout/directory-backend/pkg/mail"
	"github.com/officelayout/directory-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Office Layout Directory Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Opening database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatalf("Failed to ensure database schema: %v", err)
	}
	logger.Info("Database ready")

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	personnelRepository := database.NewPersonnelRepository(db)
	departmentRepository := database.NewDepartmentRepository(db)
	mapObjectRepository := database.NewMapObjectRepository(db)

	// Initialize mail gateway
	var mailer mail.Mailer
	if cfg.Mail.Mode == "production" {
		logger.Info("Initializing SMTP mailer in production mode...")
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
		})
	} else {
		logger.Info("Mail gateway in development mode (no actual mail will be sent)")
		mailer = mail.NewDevMailer(logger)
	}

	// Initialize services
	fieldValidator := validator.NewFieldValidator()
	snapshotService := services.NewSnapshotService(db)
	changeRequestService := services.NewChangeRequestService(
		personnelRepository,
		userRepository,
		mailer,
		cfg.Mail.From,
		logger,
	)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepository, logger)
	objectHandler := handlers.NewObjectHandler(personnelRepository, mapObjectRepository, fieldValidator, logger)
	departmentHandler := handlers.NewDepartmentHandler(departmentRepository, logger)
	accountHandler := handlers.NewAccountHandler(userRepository, logger)
	settingsHandler := handlers.NewSettingsHandler(userRepository, fieldValidator, logger)
	searchHandler := handlers.NewSearchHandler(personnelRepository, logger)
	changeRequestHandler := handlers.NewChangeRequestHandler(changeRequestService, fieldValidator, logger)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// Session store
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.Environment == "production",
	})
	router.Use(sessions.Sessions(cfg.Session.CookieName, store))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Public routes
	router.POST("/check_login.php", authHandler.Login)
	router.GET("/logout.php", authHandler.Logout)
	router.POST("/search.php", searchHandler.Search)
	router.GET("/search.php", searchHandler.Search)
	router.GET("/createxml.php", snapshotHandler.Export)

	// Admin routes (layout and account management)
	admin := router.Group("")
	admin.Use(middleware.RequireRole(userRepository, models.RoleAdmin))
	{
		admin.GET("/insert.php", objectHandler.Insert)
		admin.GET("/edit.php", objectHandler.Edit)
		admin.GET("/update.php", objectHandler.Move)
		admin.GET("/remove.php", objectHandler.Remove)
		admin.GET("/addDepartment.php", departmentHandler.Add)
		admin.GET("/removeDepartment.php", departmentHandler.Remove)
		admin.POST("/addAccount.php", accountHandler.Add)
		admin.POST("/removeAccount.php", accountHandler.Remove)
	}

	// HR routes (change requests)
	hr := router.Group("")
	hr.Use(middleware.RequireRole(userRepository, models.RoleHR))
	{
		hr.POST("/sendMail.php", changeRequestHandler.Submit)
	}

	// Self-service routes (any logged-in account)
	settings := router.Group("")
	settings.Use(middleware.RequireLogin(userRepository))
	{
		settings.POST("/submit_settings.php", settingsHandler.Submit)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		// Add user context if the gate installed one
		if user, ok := middleware.GetRequestUser(c); ok {
			fields["username"] = user.Username
			fields["role"] = user.Role
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
