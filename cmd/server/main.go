// Package main is the application entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/internal/handler"
	"guardian-portal-go/internal/middleware"
	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/database"
	"guardian-portal-go/pkg/es"
	"guardian-portal-go/pkg/kafka"
	"guardian-portal-go/pkg/llm"
	"guardian-portal-go/pkg/log"
	"guardian-portal-go/pkg/storage"
	"guardian-portal-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration.
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. Initialize the logger.
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("logger initialized successfully")

	// 3. Initialize datastores and external clients.
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("failed to initialize elasticsearch: %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	if err := database.DB.AutoMigrate(
		&model.Caregiver{},
		&model.Category{},
		&model.ContentItem{},
		&model.RecipientProfile{},
		&model.Conversation{},
	); err != nil {
		log.Fatal("failed to migrate database schema", err)
	}

	// 4. Initialize repositories.
	caregiverRepo := repository.NewCaregiverRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	contentRepo := repository.NewContentRepository(database.DB)
	recipientRepo := repository.NewRecipientRepository(database.DB)
	knowledgeRepo := repository.NewKnowledgeRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB)
	knowledgeCache := repository.NewKnowledgeCache(database.RDB)

	// 5. Initialize services.
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	llmClient := llm.NewClient(cfg.LLM)
	feed := service.NewFeed()
	caregiverService := service.NewCaregiverService(caregiverRepo, jwtManager)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, knowledgeCache)
	categoryService := service.NewCategoryService(categoryRepo, knowledgeService)
	contentService := service.NewContentService(contentRepo, categoryRepo, knowledgeService)
	recipientService := service.NewRecipientService(recipientRepo)
	conversationService := service.NewConversationService(conversationRepo, cfg.Elasticsearch)
	smsService := service.NewSMSService(
		recipientRepo,
		caregiverRepo,
		knowledgeService,
		conversationRepo,
		llmClient,
		service.KafkaAuditPublisher{},
		feed,
		cfg.SMS,
	)

	// 6. Start the background conversation indexer.
	go kafka.StartConsumer(cfg.Kafka, &es.ConversationIndexer{IndexName: cfg.Elasticsearch.IndexName})

	// 7. Build the router.
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Guardian Portal Backend is running!"})
	})

	// Inbound SMS webhook; the gateway does not authenticate with a bearer
	// token, sender identity is resolved against the recipient directory.
	r.POST("/sms", handler.NewSMSHandler(smsService).HandleIncoming)

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(caregiverService).RefreshToken)
		}

		caregivers := apiV1.Group("/caregivers")
		{
			caregivers.POST("/register", handler.NewCaregiverHandler(caregiverService).Register)
			caregivers.POST("/login", handler.NewCaregiverHandler(caregiverService).Login)

			authed := caregivers.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, caregiverService))
			{
				authed.GET("/me", handler.NewCaregiverHandler(caregiverService).GetProfile)
				authed.PUT("/tone", handler.NewCaregiverHandler(caregiverService).UpdateTone)
			}
		}

		categories := apiV1.Group("/categories")
		categories.Use(middleware.AuthMiddleware(jwtManager, caregiverService))
		{
			categories.POST("", handler.NewCategoryHandler(categoryService).Create)
			categories.GET("", handler.NewCategoryHandler(categoryService).List)
			categories.PUT("/:id", handler.NewCategoryHandler(categoryService).Update)
			categories.DELETE("/:id", handler.NewCategoryHandler(categoryService).Delete)
			categories.GET("/:id/content", handler.NewContentHandler(contentService).ListByCategory)
		}

		content := apiV1.Group("/content")
		content.Use(middleware.AuthMiddleware(jwtManager, caregiverService))
		{
			content.POST("", handler.NewContentHandler(contentService).Create)
			content.PUT("/:id", handler.NewContentHandler(contentService).Update)
			content.DELETE("/:id", handler.NewContentHandler(contentService).Delete)
		}

		recipients := apiV1.Group("/recipients")
		recipients.Use(middleware.AuthMiddleware(jwtManager, caregiverService))
		{
			recipients.POST("", handler.NewRecipientHandler(recipientService).Create)
			recipients.GET("", handler.NewRecipientHandler(recipientService).List)
			recipients.DELETE("/:id", handler.NewRecipientHandler(recipientService).Delete)
		}

		conversations := apiV1.Group("/conversations")
		conversations.Use(middleware.AuthMiddleware(jwtManager, caregiverService))
		{
			conversations.GET("", handler.NewConversationHandler(conversationService, feed).List)
			conversations.GET("/search", handler.NewConversationHandler(conversationService, feed).Search)
			conversations.GET("/live", handler.NewConversationHandler(conversationService, feed).Live)
		}

		media := apiV1.Group("/media")
		media.Use(middleware.AuthMiddleware(jwtManager, caregiverService))
		{
			media.POST("", handler.NewMediaHandler(cfg.MinIO).Upload)
			media.GET("/:object/url", handler.NewMediaHandler(cfg.MinIO).PresignedURL)
		}
	}

	// 8. Start the HTTP server with graceful shutdown.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP server shutdown failed: %v", err)
	}

	log.Info("server stopped gracefully")
}
