package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ecommstack/store-api/internal/customers"
	"github.com/ecommstack/store-api/internal/logging"
	"github.com/ecommstack/store-api/internal/observability"
	"github.com/ecommstack/store-api/internal/orders"
	"github.com/ecommstack/store-api/internal/products"
	"github.com/ecommstack/store-api/internal/storage"
)

const defaultOrderTimeout = 10 * time.Second

func main() {
	serviceName := getEnv("SERVICE_NAME", "store-api")

	logger, err := logging.NewLogger(serviceName, getEnv("ENV", "development"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize OpenTelemetry
	tp, err := observability.InitTracer(context.Background(), serviceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := observability.InitMetrics(context.Background(), serviceName)
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	// Initialize database
	pool, err := storage.NewPool(context.Background(), storage.Config{
		User:     getEnv("DATABASE_USER", "root"),
		Password: getEnv("DATABASE_PASSWORD", "pass"),
		Host:     getEnv("DATABASE_HOST", "localhost"),
		Port:     getEnv("DATABASE_PORT", "5432"),
		Database: getEnv("DATABASE_NAME", "store_db"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(registry)

	// Initialize dependencies
	customerRepository := customers.NewCustomerRepository(pool)
	productRepository := products.NewProductRepository(pool)
	orderRepository := orders.NewOrderRepository(pool)

	tracer := tp.Tracer(serviceName)

	customerUseCase := customers.NewUseCase(customerRepository, logger)
	productUseCase := products.NewUseCase(productRepository, logger)
	orderUseCase := orders.NewUseCase(orderRepository, productRepository, customerRepository, logger)

	customerHandler := customers.NewHandler(customerUseCase, metrics)
	productHandler := products.NewHandler(productUseCase, metrics)
	orderHandler := orders.NewHandler(orderUseCase, tracer, metrics, defaultOrderTimeout)

	// Setup Gin router
	r := gin.Default()
	r.Use(otelgin.Middleware(serviceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.POST("/customers", customerHandler.CreateCustomer)
	r.GET("/customers/:id", customerHandler.GetCustomer)

	r.POST("/products", productHandler.CreateProduct)
	r.GET("/products", productHandler.ListProducts)

	r.POST("/orders", orderHandler.CreateOrder)
	r.GET("/orders/:id", orderHandler.GetOrder)

	port := getEnv("PORT", "8080")
	log.Printf("🚀 Store API listening on port %s", port)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
