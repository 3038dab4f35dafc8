package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"miniinventory/internal/auth"
	"miniinventory/internal/cache"
	"miniinventory/internal/cli"
	"miniinventory/internal/config"
	"miniinventory/internal/db"
	"miniinventory/internal/export"
	"miniinventory/internal/repository"
	"miniinventory/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env not loaded: %v", err)
	}
	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	authService := service.NewAuthService(
		repository.NewUserRepository(gormDB),
		auth.NewJWTService(cfg.JWTSecret),
		auth.NewTokenStore(cacheClient),
		service.DefaultAdmin{Username: cfg.DefaultAdminUsername, Password: cfg.DefaultAdminPassword},
	)
	if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatalf("default admin: %v", err)
	}
	inventoryService := service.NewInventoryService(
		repository.NewProductRepository(gormDB),
		cacheClient,
		export.NewExporter(cfg.ExportXLSXEnabled),
	)

	err = cli.NewRootCommand(inventoryService, authService).Execute()
	_ = cacheClient.Close()
	_ = db.Close(gormDB)
	if err != nil {
		os.Exit(1)
	}
}
