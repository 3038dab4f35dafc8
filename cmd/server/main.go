package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"miniinventory/docs" // swagger docs
	"miniinventory/internal/auth"
	"miniinventory/internal/cache"
	"miniinventory/internal/config"
	"miniinventory/internal/db"
	"miniinventory/internal/export"
	"miniinventory/internal/handler"
	"miniinventory/internal/model"
	"miniinventory/internal/repository"
	"miniinventory/internal/router"
	"miniinventory/internal/service"
)

// @title Inventory Manager API
// @version 1.0
// @description Single-user product inventory with search, dashboard totals and CSV/XLSX export.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env not loaded: %v", err)
	}
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer db.Close(gormDB)

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := gormDB.Migrator().DropTable(&model.Product{}, &model.User{}); err != nil {
			log.Printf("Warning: Failed to drop tables (may not exist): %v", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if !cfg.CacheEnabled() {
		log.Println("REDIS_ADDR not set: dashboard cache and refresh sessions disabled")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, service.DefaultAdmin{
		Username: cfg.DefaultAdminUsername,
		Password: cfg.DefaultAdminPassword,
	})
	inventoryService := service.NewInventoryService(productRepo, cacheClient, export.NewExporter(cfg.ExportXLSXEnabled))

	if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatalf("default admin: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(inventoryService)
	reportHandler := handler.NewReportHandler(inventoryService)

	router.Register(e, jwtService, authHandler, productHandler, reportHandler)

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
