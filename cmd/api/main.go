package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"shopadmin/internal/analytics"
	"shopadmin/internal/caching"
	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/handlers"
	"shopadmin/internal/jobs"
	"shopadmin/internal/jobs/background"
	"shopadmin/internal/logger"
	"shopadmin/internal/reports"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("starting shopadmin API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	if err := database.RunMigrations(cfg.Database.URL(), "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)

	objectStore, err := reports.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	salesRepo := repositories.NewSalesRepo(pool)

	// Services
	catalogSvc := services.NewCatalogService(categoryRepo, productRepo)
	inventorySvc := services.NewInventoryService(inventoryRepo, productRepo, cacheSvc, log)
	salesSvc := services.NewSalesService(salesRepo, cacheSvc, log)
	analyticsSvc := analytics.NewService(salesRepo, cacheSvc, log)
	reportSvc := reports.NewService(analyticsSvc, objectStore, cfg.Minio.ReportBucket, log)

	// Background jobs
	lowStockMonitor := jobs.NewLowStockMonitor(inventoryRepo, productRepo, log)
	scheduler, err := background.NewJobScheduler(analyticsSvc, lowStockMonitor, log)
	if err != nil {
		log.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Error("failed to stop job scheduler", zap.Error(err))
		}
	}()

	// Handlers
	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	salesHandlers := handlers.NewSalesHandlers(salesSvc)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsSvc, reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.Readiness)

	v1 := e.Group("/v1")

	v1.GET("/categories", catalogHandlers.ListCategories)
	v1.POST("/categories", catalogHandlers.CreateCategory)
	v1.GET("/categories/:id", catalogHandlers.GetCategory)
	v1.PUT("/categories/:id", catalogHandlers.UpdateCategory)
	v1.DELETE("/categories/:id", catalogHandlers.DeleteCategory)

	v1.GET("/products", catalogHandlers.ListProducts)
	v1.POST("/products", catalogHandlers.CreateProduct)
	v1.GET("/products/:id", catalogHandlers.GetProduct)
	v1.PUT("/products/:id", catalogHandlers.UpdateProduct)
	v1.DELETE("/products/:id", catalogHandlers.DeleteProduct)

	v1.GET("/inventory", inventoryHandlers.ListInventory)
	v1.POST("/inventory", inventoryHandlers.CreateInventory)
	v1.GET("/inventory/alerts", inventoryHandlers.LowStockAlerts)
	v1.GET("/inventory/:productId", inventoryHandlers.GetInventory)
	v1.PUT("/inventory/:productId", inventoryHandlers.AdjustInventory)
	v1.GET("/inventory/:productId/history", inventoryHandlers.GetInventoryHistory)

	v1.GET("/sales", salesHandlers.ListSales)
	v1.POST("/sales", salesHandlers.RecordSale)
	v1.GET("/sales/order/:orderId", salesHandlers.GetSaleByOrderID)
	v1.GET("/sales/:id", salesHandlers.GetSale)

	v1.GET("/analytics/summary", analyticsHandlers.Summary)
	v1.GET("/analytics/summary/export", analyticsHandlers.ExportSummary)
	v1.GET("/analytics/revenue", analyticsHandlers.RevenueByPeriod)
	v1.GET("/analytics/revenue/compare", analyticsHandlers.CompareRevenue)
	v1.GET("/analytics/revenue/export", analyticsHandlers.ExportRevenue)

	go func() {
		sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-sigCtx.Done()

		log.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server error", zap.Error(err))
	}
	log.Info("server exiting")
}
