package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hannah-brooks/job-dispatch-api/config"
	"github.com/hannah-brooks/job-dispatch-api/controllers"
	"github.com/hannah-brooks/job-dispatch-api/middleware"
	"github.com/hannah-brooks/job-dispatch-api/models"
	"github.com/hannah-brooks/job-dispatch-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Logger().Fatalf("Failed to load configuration: %v", err)
	}

	log := config.InitLogger(cfg)
	log.Info("Starting job dispatch API server...")

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.JobType{},
		&models.Job{},
		&models.TechnicianReport{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database migration completed successfully")

	// Report-photo storage is optional; without a bucket the API still runs
	// and reports carry whatever image references the client sends
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.WithField("bucket", cfg.AWSS3Bucket).Info("Report image storage initialized")
	} else {
		log.Warn("AWS_S3_BUCKET not set, report image uploads disabled")
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Infof("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the application router with all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoints
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Active job types are public: the job-creation UI loads the
		// catalog before a session exists
		v1.GET("/job-types", controllers.ListJobTypes)

		protected := v1.Group("")
		protected.Use(middleware.EnsureValidToken(cfg))
		{
			// Job type catalog (admin-only except the public listing above)
			protected.POST("/job-types", controllers.CreateJobType)
			protected.GET("/job-types/all", controllers.ListDeletedJobTypes)
			protected.PATCH("/job-types/:id", controllers.UpdateJobType)
			protected.DELETE("/job-types/:id", controllers.DeleteJobType)

			// Jobs
			protected.POST("/jobs", controllers.CreateJob)
			protected.GET("/jobs", controllers.ListJobs)
			protected.GET("/jobs/:id", controllers.GetJob)
			protected.PATCH("/jobs/:id/status", controllers.UpdateJobStatus)
			protected.PATCH("/jobs/:id/assign", controllers.AssignJob)
			protected.POST("/jobs/:id/report", controllers.CreateReport)

			// Technician self-service
			protected.POST("/technician/availability", controllers.UpdateAvailability)

			// Users
			protected.POST("/users", controllers.CreateUser)
			protected.GET("/users", controllers.ListUsers)
			protected.GET("/users/me", controllers.GetMyProfile)

			// Admin tools
			protected.GET("/admin/users/:id/deletion-check", controllers.DeletionCheck)

			// Report photo uploads
			protected.POST("/uploads/report-image", controllers.UploadReportImage)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job Dispatch API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database not initialized",
			},
		})
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
