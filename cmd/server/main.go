package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/config"
	"pasta_admin/internal/handlers"
	"pasta_admin/internal/middleware"
	"pasta_admin/internal/services"
	"pasta_admin/internal/session"
	"pasta_admin/internal/store"
	"pasta_admin/pkg/whatsapp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open the entity store (seeds itself on first run)
	if err := os.MkdirAll(filepath.Dir(cfg.SnapshotPath), 0o755); err != nil {
		log.Fatal("Failed to create snapshot directory:", err)
	}
	st, err := store.Open(cfg.SnapshotPath)
	if err != nil {
		log.Fatal("Failed to open entity store:", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Final snapshot write failed: %v", err)
		}
	}()

	// Initialize the session backend
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	var sessions session.Store
	if cfg.RedisURL != "" {
		redisSessions, err := session.NewRedisStore(cfg.RedisURL, ttl)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisSessions.Close()
		sessions = redisSessions
	} else {
		log.Println("REDIS_URL not set, using in-memory sessions")
		sessions = session.NewMemoryStore(ttl)
	}

	// Initialize WhatsApp bridge client
	bridge := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword)

	// Initialize services
	authService := services.NewAuthService(st, sessions)
	orderService := services.NewOrderService(st, int64(cfg.TaxRateBps))
	whatsappService := services.NewWhatsAppService(bridge, st)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure, ttl)
	productHandler := handlers.NewProductHandler(st)
	clientHandler := handlers.NewClientHandler(st)
	orderHandler := handlers.NewOrderHandler(st, orderService)
	chatHandler := handlers.NewChatHandler(st, whatsappService)
	userHandler := handlers.NewUserHandler(st)
	publicHandler := handlers.NewPublicHandler(st)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappService, cfg.WebhookSecret)
	healthHandler := handlers.NewHealthHandler(st)

	// Setup routes
	router := gin.Default()
	router.Use(middleware.LoadUser(authService))

	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	{
		// Public marketing site
		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/contact", publicHandler.Contact)
		api.POST("/newsletter", publicHandler.Subscribe)

		// Auth
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/register", middleware.RequireSuperAdmin(), authHandler.Register)

		// Inbound messages from the bridge (secret-gated, not session-gated)
		api.POST("/whatsapp/webhook", whatsappHandler.HandleWebhook)

		// Vendor dashboard
		authed := api.Group("", middleware.RequireAuthenticated())
		{
			authed.GET("/clients", clientHandler.List)
			authed.POST("/clients", clientHandler.Create)
			authed.GET("/clients/:id", clientHandler.Get)
			authed.PUT("/clients/:id", clientHandler.Update)
			authed.GET("/clients/:id/chats", chatHandler.List)
			authed.POST("/clients/:id/chats", chatHandler.Send)

			authed.GET("/orders", orderHandler.List)
			authed.POST("/orders", orderHandler.Create)
			authed.GET("/orders/:id", orderHandler.Get)
			authed.PUT("/orders/:id/status", orderHandler.UpdateStatus)
		}

		// Admin dashboard
		admin := api.Group("", middleware.RequireAdmin())
		{
			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)

			admin.GET("/users", userHandler.List)
			admin.GET("/contact", publicHandler.ListContacts)
			admin.GET("/newsletter", publicHandler.ListSubscriptions)

			admin.GET("/whatsapp/qr", whatsappHandler.QR)
			admin.GET("/whatsapp/status", whatsappHandler.Status)
		}

		// Super admin
		super := api.Group("", middleware.RequireSuperAdmin())
		{
			super.PUT("/users/:id", userHandler.Update)
			super.DELETE("/users/:id", userHandler.Delete)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
