package routes

import (
	"github.com/cloudkitchen/backend/internal/api/handlers"
	"github.com/cloudkitchen/backend/internal/api/middleware"
	"github.com/cloudkitchen/backend/internal/config"
	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg)
	reviewService := services.NewReviewService(db, emailService)
	catalogService := services.NewCatalogService(db)
	blogService := services.NewBlogService(db)
	s3Service := services.NewS3Service(cfg.AWSRegion, cfg.S3Bucket, cfg.AWSAccessKey, cfg.AWSSecretKey)

	// Initialize handlers
	tokenHandler := handlers.NewTokenHandler(tokenService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	serviceHandler := handlers.NewServiceHandler(catalogService, s3Service)
	blogHandler := handlers.NewBlogHandler(blogService)

	// Health check
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Cloud Kitchen server is running")
	})

	// Token issuance
	router.POST("/jwt", tokenHandler.IssueToken)

	// Service (menu offering) routes
	servicesGroup := router.Group("/services")
	{
		servicesGroup.GET("", serviceHandler.GetServices)
		servicesGroup.GET("/:serviceId", serviceHandler.GetService)
		servicesGroup.POST("", serviceHandler.CreateService)
		servicesGroup.POST("/:serviceId/images", serviceHandler.UploadServiceImages)
	}

	// Blog routes
	blogs := router.Group("/blogs")
	{
		blogs.GET("", blogHandler.GetBlogs)
		blogs.POST("", blogHandler.CreateBlog)
	}

	// Review routes
	reviews := router.Group("/reviews")
	{
		reviews.GET("", middleware.Auth(tokenService), reviewHandler.GetReviews)
		reviews.POST("", reviewHandler.CreateReview)
		reviews.PUT("/:reviewId", reviewHandler.UpdateReview)
		reviews.DELETE("/:reviewId", reviewHandler.DeleteReview)
	}

	logger.Info("Routes initialized successfully")
}
