package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bidhouse-backend/internal/comps"
	"bidhouse-backend/internal/config"
	"bidhouse-backend/internal/database"
	"bidhouse-backend/internal/handlers"
	"bidhouse-backend/internal/middleware"
	"bidhouse-backend/internal/openai"
	"bidhouse-backend/internal/services"
	"bidhouse-backend/internal/store"
	"bidhouse-backend/internal/supabase"
)

const compsFinderAttempts = 3

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	// Database gateway
	storeClient, err := store.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer storeClient.Close()

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// External AI clients. Missing keys surface as request-time errors.
	openaiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIDescriptionKey)
	compsClient := comps.NewClient(cfg.OpenAIBaseURL, cfg.OpenAICompsKey)

	// Comps sales older than the start of last year never validate.
	minSaleDate := time.Date(time.Now().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	compsFinder := comps.NewFinder(compsClient, compsFinderAttempts, minSaleDate)
	compsService := services.NewCompsService(storeClient, compsFinder)

	// Handlers
	profilesHandler := handlers.NewProfilesHandler(storeClient)
	auctionsHandler := handlers.NewAuctionsHandler(storeClient, storageClient)
	itemsHandler := handlers.NewItemsHandler(storeClient, storageClient)
	imagesHandler := handlers.NewImagesHandler(storeClient, storageClient)
	bidsHandler := handlers.NewBidsHandler(storeClient, realtimeClient)
	ordersHandler := handlers.NewOrdersHandler(storeClient)
	compsHandler := handlers.NewCompsHandler(storeClient, compsService)
	describeHandler := handlers.NewDescribeHandler(openaiClient)
	exportHandler := handlers.NewExportHandler(storeClient)
	demoHandler := handlers.NewDemoHandler(storeClient)

	// Setup router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public marketplace surface: bidders and buyers need no account.
	router.GET("/auctions/public", auctionsHandler.ListPublicAuctions)
	router.GET("/auctions/:auction_id/public", auctionsHandler.GetPublicAuction)
	router.GET("/auctions/:auction_id/demo-results", demoHandler.Results)
	router.GET("/auctions/:auction_id/excel", exportHandler.AuctionExcel)
	router.POST("/items/:item_id/bid", bidsHandler.PlaceBid)
	router.POST("/items/:item_id/buy-now", bidsHandler.BuyNow)
	router.GET("/items/:item_id/bids", bidsHandler.ListItemBids)
	router.GET("/orders", ordersHandler.ListOrders)
	router.GET("/orders/:order_id", ordersHandler.GetOrder)

	// Seller routes require a Supabase JWT.
	seller := router.Group("/api/v1")
	seller.Use(middleware.AuthMiddleware(cfg))

	seller.POST("/users", profilesHandler.CreateUser)
	seller.GET("/users/:profile_id", profilesHandler.GetUser)
	seller.PUT("/users/:profile_id/email", profilesHandler.UpdateEmail)
	seller.POST("/payments", profilesHandler.ProcessPayment)

	seller.POST("/auctions", auctionsHandler.CreateAuction)
	seller.GET("/auctions", auctionsHandler.ListAuctions)
	seller.GET("/auctions/:auction_id", auctionsHandler.GetAuction)
	seller.PUT("/auctions/:auction_id", auctionsHandler.UpdateAuction)
	seller.DELETE("/auctions/:auction_id", auctionsHandler.DeleteAuction)
	seller.PUT("/auctions/:auction_id/settings", auctionsHandler.UpdateSettings)
	seller.POST("/auctions/:auction_id/publish", auctionsHandler.PublishAuction)
	seller.POST("/auctions/:auction_id/close", auctionsHandler.CloseAuction)
	seller.GET("/auctions/:auction_id/bids", auctionsHandler.GetAuctionBids)
	seller.GET("/auctions/:auction_id/items", itemsHandler.ListByAuction)

	seller.POST("/items", itemsHandler.CreateItem)
	seller.GET("/items", itemsHandler.ListMine)
	seller.GET("/items/:item_id", itemsHandler.GetItem)
	seller.PUT("/items/:item_id", itemsHandler.UpdateItem)
	seller.DELETE("/items/:item_id", itemsHandler.DeleteItem)
	seller.PUT("/items/:item_id/auction-settings", itemsHandler.UpdateAuctionSettings)
	seller.PUT("/items/batch/auction-settings", itemsHandler.BatchUpdateAuctionSettings)

	seller.POST("/items/:item_id/images", imagesHandler.AddImages)
	seller.POST("/items/:item_id/images/upload", imagesHandler.Upload)
	seller.PUT("/items/:item_id/images/:image_id", imagesHandler.UpdateImageURL)
	seller.PUT("/items/:item_id/images/:image_id/primary", imagesHandler.SetPrimary)
	seller.GET("/items/:item_id/comps", compsHandler.Saved)

	seller.POST("/comps", compsHandler.Generate)
	seller.POST("/comps/batch", compsHandler.GenerateBatch)
	seller.GET("/comps/:item_id", compsHandler.Stored)

	seller.POST("/describe", describeHandler.Simple)
	seller.POST("/describe/vision", describeHandler.Vision)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
