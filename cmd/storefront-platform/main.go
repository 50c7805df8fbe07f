package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/karanbedi/storefront-platform/internal/api/handlers"
	"github.com/karanbedi/storefront-platform/internal/api/middleware"
	"github.com/karanbedi/storefront-platform/internal/cache"
	"github.com/karanbedi/storefront-platform/internal/config"
	"github.com/karanbedi/storefront-platform/internal/health"
	"github.com/karanbedi/storefront-platform/internal/metrics"
	repository "github.com/karanbedi/storefront-platform/internal/repositories"
	service "github.com/karanbedi/storefront-platform/internal/services"
	"github.com/karanbedi/storefront-platform/internal/tracing"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on process environment")
	}

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Init(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.GetAddr(),
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	viewCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer func() {
		if err := viewCache.Close(); err != nil {
			slog.Warn("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	productService := service.NewProductService(repos.Product, repos.Review, viewCache, &cfg.Cache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Guest, viewCache, &cfg.Cache, &cfg.GuestSession)
	cartHandler := handlers.NewCartHandler(cartService)
	identityMiddleware := middleware.NewIdentityMiddleware(jwtKey, &cfg.GuestSession)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("❌ Error registering health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", productHandler.GetReviews())
	routerMux.HandleFunc("GET /api/v1/products/{id}/recommendations", productHandler.GetRecommendations())
	routerMux.HandleFunc("GET /api/v1/filters", productHandler.GetFilters())
	routerMux.HandleFunc("GET /api/v1/cart", identityMiddleware.Resolve(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", identityMiddleware.Resolve(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{id}", identityMiddleware.Resolve(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", identityMiddleware.Resolve(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", identityMiddleware.Resolve(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/merge", identityMiddleware.Resolve(cartHandler.MergeCart()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront-platform")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Warn("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
