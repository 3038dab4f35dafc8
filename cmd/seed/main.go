package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"miniinventory/internal/cache"
	"miniinventory/internal/config"
	"miniinventory/internal/db"
	"miniinventory/internal/export"
	"miniinventory/internal/model"
	"miniinventory/internal/repository"
	"miniinventory/internal/service"
)

// SeedProductData is one entry of a seed file.
type SeedProductData struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

var sampleProducts = []SeedProductData{
	{Name: "Cordless Drill", Category: "Tools", Quantity: 12, Price: "89.99"},
	{Name: "Hammer", Category: "Tools", Quantity: 40, Price: "14.50"},
	{Name: "Screwdriver Set", Category: "Tools", Quantity: 25, Price: "22.00"},
	{Name: "Copy Paper A4", Category: "Office", Quantity: 200, Price: "4.25"},
	{Name: "Stapler", Category: "Office", Quantity: 30, Price: "7.80"},
	{Name: "USB-C Cable", Category: "Electronics", Quantity: 150, Price: "6.99"},
	{Name: "Wireless Mouse", Category: "Electronics", Quantity: 45, Price: "19.90"},
	{Name: "Desk Lamp", Category: "Furniture", Quantity: 18, Price: "32.00"},
	{Name: "Packing Tape", Category: "", Quantity: 80, Price: "2.10"},
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env not loaded: %v", err)
	}
	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gormDB)
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	source := os.Getenv("SEED_SOURCE")
	items, err := loadSeedData(source)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	if source == "" {
		log.Printf("SEED_SOURCE not set, using %d built-in sample products", len(items))
	} else {
		log.Printf("Loaded %d products from %s", len(items), source)
	}

	inputs, skipped := toInputs(items)
	if skipped > 0 {
		log.Printf("Skipped %d invalid products", skipped)
	}

	svc := service.NewInventoryService(
		repository.NewProductRepository(gormDB),
		cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB),
		export.NewExporter(cfg.ExportXLSXEnabled),
	)

	ctx := context.Background()
	existing, err := svc.List(ctx, "")
	if err != nil {
		log.Fatalf("Failed to read inventory: %v", err)
	}
	if len(existing) > 0 && os.Getenv("SEED_FORCE") != "true" {
		log.Printf("Inventory already holds %d products, nothing seeded (set SEED_FORCE=true to append)", len(existing))
		return
	}

	log.Println("Seeding products into database...")
	seeded, err := seedProducts(ctx, svc, inputs)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New products created: %d", seeded)
	log.Printf("  - Total products in store: %d", len(existing)+seeded)
}

// loadSeedData reads products from an http(s) URL, a local JSON file, or
// the built-in sample set when source is empty.
func loadSeedData(source string) ([]SeedProductData, error) {
	if source == "" {
		return sampleProducts, nil
	}

	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s returned status code: %d", source, resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
	}

	var items []SeedProductData
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return items, nil
}

// toInputs converts seed entries, dropping those with an unparseable price.
func toInputs(items []SeedProductData) ([]model.ProductInput, int) {
	inputs := make([]model.ProductInput, 0, len(items))
	skipped := 0
	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			log.Printf("Skipping %q with invalid price: %s", item.Name, item.Price)
			skipped++
			continue
		}
		inputs = append(inputs, model.ProductInput{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Price:    price.Round(2),
		})
	}
	return inputs, skipped
}

func seedProducts(ctx context.Context, svc service.InventoryService, inputs []model.ProductInput) (int, error) {
	seeded := 0
	for _, input := range inputs {
		if _, err := svc.Insert(ctx, input); err != nil {
			return seeded, fmt.Errorf("error creating product %q: %w", input.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
