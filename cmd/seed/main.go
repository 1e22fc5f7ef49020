// Standalone seed tool that populates the storefront database with a small
// but realistic fashion catalog: brands, categories, banners, a few hundred
// products, and the development admin profile.
//
// Run: go run ./cmd/seed
package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const totalProducts = 200

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// deterministicID produces a stable id from a namespace and index so re-runs
// upsert the same rows instead of duplicating them.
func deterministicID(namespace string, index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", namespace, index)))
	hex := fmt.Sprintf("%x", h[:16])
	return fmt.Sprintf("%s-%s-4%s-8%s-%s", hex[0:8], hex[8:12], hex[13:16], hex[17:20], hex[20:32])
}

var categories = []struct {
	Name string
	Slug string
}{
	{"Men", "men"},
	{"Women", "women"},
	{"Kids", "kids"},
	{"Accessories", "accessories"},
	{"Footwear", "footwear"},
}

var brandNames = []string{"Angies", "Urban Thread", "Loom & Co", "Velour", "Northline"}

var garments = []struct {
	Noun     string
	Category string
	MinPrice int64 // cents
	MaxPrice int64
	Sizes    []string
}{
	{"T-Shirt", "Men", 1500, 3500, []string{"S", "M", "L", "XL"}},
	{"Hoodie", "Men", 4000, 9000, []string{"S", "M", "L", "XL"}},
	{"Denim Jacket", "Men", 6000, 15000, []string{"M", "L", "XL"}},
	{"Summer Dress", "Women", 3500, 12000, []string{"XS", "S", "M", "L"}},
	{"Blouse", "Women", 2500, 7000, []string{"XS", "S", "M", "L"}},
	{"Maxi Skirt", "Women", 3000, 8000, []string{"S", "M", "L"}},
	{"Joggers", "Kids", 1800, 4000, []string{"4Y", "6Y", "8Y", "10Y"}},
	{"Rain Jacket", "Kids", 2500, 6000, []string{"4Y", "6Y", "8Y"}},
	{"Silk Scarf", "Accessories", 1200, 4500, nil},
	{"Leather Belt", "Accessories", 1500, 5000, nil},
	{"Canvas Sneakers", "Footwear", 3500, 9500, []string{"38", "40", "42", "44"}},
	{"Chelsea Boots", "Footwear", 7000, 18000, []string{"39", "41", "43"}},
}

var adjectives = []string{"Classic", "Vintage", "Slim Fit", "Oversized", "Essential", "Premium", "Everyday", "Signature"}
var colors = []string{"Black", "White", "Navy", "Olive", "Burgundy", "Sand"}

func main() {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "angiesplug"),
		getEnv("POSTGRES_PASSWORD", "angiesplug_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "angiesplug"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	catIDs := map[string]string{}
	for i, c := range categories {
		id := deterministicID("category", i)
		catIDs[c.Name] = id
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, slug, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO NOTHING`,
			id, c.Name, c.Slug, i,
		)
		if err != nil {
			log.Fatalf("seed category %s: %v", c.Name, err)
		}
	}
	log.Printf("seeded %d categories", len(categories))

	brandIDs := make([]string, len(brandNames))
	for i, name := range brandNames {
		id := deterministicID("brand", i)
		brandIDs[i] = id
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		slug = strings.ReplaceAll(slug, "&", "and")
		_, err := pool.Exec(ctx, `
			INSERT INTO brands (id, name, slug, logo_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO NOTHING`,
			id, name, slug, fmt.Sprintf("https://cdn.angiesplug.shop/brands/%s.png", slug),
		)
		if err != nil {
			log.Fatalf("seed brand %s: %v", name, err)
		}
	}
	log.Printf("seeded %d brands", len(brandNames))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < totalProducts; i++ {
		g := garments[i%len(garments)]
		adj := adjectives[rng.Intn(len(adjectives))]
		color := colors[rng.Intn(len(colors))]
		name := fmt.Sprintf("%s %s %s", adj, color, g.Noun)
		slug := fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(name, " ", "-")), i)
		price := g.MinPrice + rng.Int63n(g.MaxPrice-g.MinPrice+1)
		price -= price % 100
		price += 99 // x.99 pricing
		rating := 3.0 + rng.Float64()*2.0
		catID := catIDs[g.Category]
		brandID := brandIDs[rng.Intn(len(brandIDs))]
		created := time.Now().AddDate(0, 0, -rng.Intn(365))
		sizes := g.Sizes
		if sizes == nil {
			sizes = []string{}
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, slug, description, category, category_id, brand_id,
			                      price, currency, rating, sizes, colors, image_url, is_active,
			                      created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, $14, $14)
			ON CONFLICT (slug) DO NOTHING`,
			deterministicID("product", i), name, slug,
			fmt.Sprintf("%s in %s. Part of the %s range.", g.Noun, strings.ToLower(color), strings.ToLower(adj)),
			g.Category, catID, brandID, price, "USD", float64(int(rating*10))/10,
			sizes, []string{color},
			fmt.Sprintf("https://cdn.angiesplug.shop/products/%s.jpg", slug),
			created,
		)
		if err != nil {
			log.Fatalf("seed product %d: %v", i, err)
		}
	}
	log.Printf("seeded %d products", totalProducts)

	banners := []struct{ Title, Subtitle, Position string }{
		{"New Season Drop", "Fresh fits for the season ahead", "hero"},
		{"Free Shipping Over $50", "Automatically applied at checkout", "mid"},
		{"Join the List", "Early access to sales and restocks", "foot"},
	}
	for i, b := range banners {
		_, err := pool.Exec(ctx, `
			INSERT INTO banners (id, title, subtitle, image_url, link_url, position, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			deterministicID("banner", i), b.Title, b.Subtitle,
			fmt.Sprintf("https://cdn.angiesplug.shop/banners/%s-%d.jpg", b.Position, i),
			"/products", b.Position, i,
		)
		if err != nil {
			log.Fatalf("seed banner %d: %v", i, err)
		}
	}
	log.Printf("seeded %d banners", len(banners))

	// Development admin account matching the default login bypass.
	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("LOGIN_BYPASS_PASSWORD", "admin")), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	adminID := getEnv("LOGIN_BYPASS_USER_ID", "admin-123")
	_, err = pool.Exec(ctx, `
		INSERT INTO profiles (id, email, first_name, password_hash)
		VALUES ($1, $2, 'Admin', $3)
		ON CONFLICT (email) DO NOTHING`,
		adminID, getEnv("LOGIN_BYPASS_EMAIL", "admin@gmail.com"), string(hash),
	)
	if err != nil {
		log.Fatalf("seed admin profile: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO role_permissions (user_id, role, updated_at)
		VALUES ($1, 'super_admin', now())
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()`,
		adminID,
	)
	if err != nil {
		log.Fatalf("seed admin role: %v", err)
	}
	log.Println("seeded admin account")
}
