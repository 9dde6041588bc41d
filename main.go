package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/auth"
	"storefront/cart"
	"storefront/catalog"
	"storefront/config"
	"storefront/handlers"
	"storefront/middleware"
	"storefront/order"
	"storefront/reviews"
	"storefront/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("STOREFRONT_CONFIG"))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	// The catalog fetch blocks startup until resolved; nothing can be
	// served without product data.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.CatalogTimeout)
	cat, err := catalog.Load(ctx, cfg.CatalogSource, st, cfg.StockModel == config.StockDecrementOnOrder)
	cancel()
	if err != nil {
		logger.Error("failed to load catalog", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "source", cfg.CatalogSource, "products", len(cat.All()))

	users := auth.NewRegistry(st, cfg.BcryptCost)
	ledger := cart.NewLedger(st, cat)
	recorder := order.NewRecorder(st, cat, ledger, users)

	api := &handlers.API{
		Catalog:   cat,
		Ledger:    ledger,
		Recorder:  recorder,
		Users:     users,
		Reviews:   reviews.NewService(st, cat),
		Store:     st,
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
		Logger:    logger,
	}

	// Create a new Gin router
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health-check", api.CheckHealth)

	// Public routes (no authentication required)
	r.POST("/register", api.RegisterUser)
	r.POST("/login", api.LoginUser)
	r.GET("/products", api.GetAllProducts)
	r.GET("/products/:id", api.GetProduct)
	r.GET("/products/:id/reviews", api.GetReviews)
	r.GET("/categories", api.GetCategories)

	// Protected routes (authentication required)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(api.JWTSecret))
	{
		// Cart routes
		authorized.GET("/cart", api.GetCart)
		authorized.POST("/cart/items", api.AddToCart)
		authorized.PUT("/cart/items/:id", api.UpdateCartItem)
		authorized.DELETE("/cart/items/:id", api.RemoveFromCart)
		authorized.DELETE("/cart", api.ClearCart)

		// Checkout route
		authorized.POST("/checkout", api.Checkout)

		// Order routes
		authorized.GET("/orders", api.GetOrders)
		authorized.GET("/orders/:id", api.GetOrderDetails)

		// Profile and preferences
		authorized.GET("/profile", api.GetProfile)
		authorized.GET("/preferences/theme", api.GetTheme)
		authorized.PUT("/preferences/theme", api.SetTheme)

		// Review submission
		authorized.POST("/products/:id/reviews", api.AddReview)
	}

	// Start the server
	logger.Info("server starting", "addr", cfg.ListenAddr, "stock_model", cfg.StockModel)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return store.OpenRedis(context.Background(), cfg.RedisURL)
	case config.BackendPostgres:
		return store.OpenPostgres(cfg.PostgresDSN)
	default:
		return store.NewMemory(), nil
	}
}
