// Package main implements a standalone seed script that populates the
// product search index with realistic catalog data through the bulk API.
//
// Run: go run scripts/seed_products.go
//   (API_URL and SEED_COUNT override the defaults)
package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"
)

const batchSize = 200

var categories = map[string][]string{
	"Electronics": {"Wireless Headphones", "Bluetooth Speaker", "Smart Watch", "4K Monitor", "Mechanical Keyboard", "Webcam", "Portable Charger", "Noise Cancelling Earbuds"},
	"Kitchen":     {"Espresso Machine", "Air Fryer", "Stand Mixer", "Chef Knife", "Cast Iron Skillet", "Electric Kettle", "Blender"},
	"Sports":      {"Yoga Mat", "Running Shoes", "Dumbbell Set", "Cycling Helmet", "Resistance Bands", "Foam Roller"},
	"Home":        {"Desk Lamp", "Office Chair", "Bookshelf", "Area Rug", "Throw Blanket", "Wall Clock"},
	"Books":       {"Mystery Novel", "Cookbook", "Travel Guide", "Biography", "Science Fiction Anthology"},
}

var brandsByCategory = map[string][]string{
	"Electronics": {"Sony", "Bose", "Logitech", "Samsung", "Anker"},
	"Kitchen":     {"DeLonghi", "KitchenAid", "Cuisinart", "Ninja"},
	"Sports":      {"Nike", "Adidas", "Decathlon", "Under Armour"},
	"Home":        {"Ikea", "Herman Miller", "Umbra"},
	"Books":       {"Penguin", "HarperCollins", "Vintage"},
}

var adjectives = []string{"Premium", "Compact", "Classic", "Ergonomic", "Professional", "Portable", "Deluxe", "Essential"}

type product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Brand       string            `json:"brand"`
	Sku         string            `json:"sku"`
	Price       float64           `json:"price"`
	Attributes  map[string]string `json:"attributes"`
	Tags        []string          `json:"tags"`
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// deterministicID produces a stable ID from an index so that re-runs always
// upsert the same documents instead of growing the index.
func deterministicID(index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("seed-product:%d", index)))
	return fmt.Sprintf("%x-%x-%x-%x-%x", h[0:4], h[4:6], h[6:8], h[8:10], h[10:16])
}

func makeProduct(rng *rand.Rand, index int) product {
	categoryNames := make([]string, 0, len(categories))
	for name := range categories {
		categoryNames = append(categoryNames, name)
	}
	// Map iteration order would break reproducibility.
	sort.Strings(categoryNames)
	category := categoryNames[rng.Intn(len(categoryNames))]

	base := categories[category][rng.Intn(len(categories[category]))]
	brand := brandsByCategory[category][rng.Intn(len(brandsByCategory[category]))]
	adjective := adjectives[rng.Intn(len(adjectives))]

	title := fmt.Sprintf("%s %s %s", brand, adjective, base)
	price := float64(rng.Intn(39000)+499) / 100

	return product{
		ID:          deterministicID(index),
		Title:       title,
		Description: fmt.Sprintf("%s by %s. A %s addition to any %s collection.", base, brand, adjective, category),
		Category:    category,
		Brand:       brand,
		Sku:         fmt.Sprintf("SKU-%06d", index),
		Price:       price,
		Attributes: map[string]string{
			"color":  []string{"black", "white", "silver", "navy", "red"}[rng.Intn(5)],
			"origin": []string{"DE", "TR", "CN", "US", "JP"}[rng.Intn(5)],
		},
		Tags: []string{category, brand, adjective},
	}
}

func postBatch(apiURL string, batch []product) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	resp, err := http.Post(apiURL+"/api/products/bulk", "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("post batch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post batch: unexpected status %s", resp.Status)
	}

	var result struct {
		Indexed int `json:"indexed"`
		Items   []struct {
			ID    string `json:"id"`
			Error string `json:"error,omitempty"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode batch response: %w", err)
	}
	for _, item := range result.Items {
		if item.Error != "" {
			log.Printf("item %s failed: %s", item.ID, item.Error)
		}
	}
	return nil
}

func main() {
	apiURL := getEnv("API_URL", "http://localhost:8080")
	count, err := strconv.Atoi(getEnv("SEED_COUNT", "1000"))
	if err != nil || count < 1 {
		log.Fatalf("invalid SEED_COUNT: %v", getEnv("SEED_COUNT", "1000"))
	}

	// Fixed seed so product data is stable across runs.
	rng := rand.New(rand.NewSource(42))

	start := time.Now()
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		batch := make([]product, 0, end-offset)
		for i := offset; i < end; i++ {
			batch = append(batch, makeProduct(rng, i))
		}

		if err := postBatch(apiURL, batch); err != nil {
			log.Fatalf("batch %d-%d: %v", offset, end, err)
		}
		log.Printf("seeded %d/%d products", end, count)
	}

	log.Printf("done: %d products in %s", count, time.Since(start).Round(time.Millisecond))
}
