package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eshopexpress/backend/config"
	"github.com/eshopexpress/backend/pkg/helpers"
)

var platforms = []string{"PlayStation 5", "Xbox Series X", "Nintendo Switch", "PC"}

var genres = []string{"Action", "Adventure", "RPG", "Sports", "Strategy", "Racing", "Puzzle"}

type seedGame struct {
	title       string
	description string
	price       string
	releaseDate string
	publisher   string
	developer   string
	ageRating   string
	digital     bool
	stock       int
	genres      []string
	platforms   []string
}

var games = []seedGame{
	{
		title:       "Starfall Odyssey",
		description: "Open-world space RPG with branching faction storylines.",
		price:       "79.99", releaseDate: "2026-06-12",
		publisher: "Nebula Interactive", developer: "Orbit Forge",
		ageRating: "T", stock: 120,
		genres: []string{"RPG", "Adventure"}, platforms: []string{"PlayStation 5", "PC"},
	},
	{
		title:       "Puck Masters 27",
		description: "Annual hockey sim with revamped franchise mode.",
		price:       "89.99", releaseDate: "2026-08-20",
		publisher: "Northern Play", developer: "Blue Line Studios",
		ageRating: "E", stock: 300,
		genres: []string{"Sports"}, platforms: []string{"PlayStation 5", "Xbox Series X"},
	},
	{
		title:       "Gearbound",
		description: "Co-op puzzle platformer set inside a clockwork city.",
		price:       "29.99", releaseDate: "2026-03-05",
		publisher: "Tinker Tales", developer: "Tinker Tales",
		ageRating: "E10+", digital: true, stock: 0,
		genres: []string{"Puzzle", "Adventure"}, platforms: []string{"Nintendo Switch", "PC"},
	},
	{
		title:       "Iron Vanguard",
		description: "Squad-based tactics in a post-industrial wasteland.",
		price:       "59.99", releaseDate: "2025-11-14",
		publisher: "Forge Ahead", developer: "Bastion Works",
		ageRating: "M", stock: 85,
		genres: []string{"Strategy", "Action"}, platforms: []string{"PC", "Xbox Series X"},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	platformIDs := map[string]int64{}
	for _, name := range platforms {
		var id int64
		if err := db.QueryRow(`
			INSERT INTO platforms (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name).Scan(&id); err != nil {
			log.Fatalf("failed to seed platform %q: %v", name, err)
		}
		platformIDs[name] = id
	}
	fmt.Printf("seeded %d platforms\n", len(platformIDs))

	genreIDs := map[string]int64{}
	for _, name := range genres {
		var id int64
		if err := db.QueryRow(`
			INSERT INTO genres (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name).Scan(&id); err != nil {
			log.Fatalf("failed to seed genre %q: %v", name, err)
		}
		genreIDs[name] = id
	}
	fmt.Printf("seeded %d genres\n", len(genreIDs))

	for _, g := range games {
		var id int64
		if err := db.QueryRow(`
			INSERT INTO games (title, description, price, release_date,
				publisher, developer, age_rating, is_digital, stock_quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, g.title, g.description, g.price, g.releaseDate,
			g.publisher, g.developer, g.ageRating, g.digital, g.stock).Scan(&id); err != nil {
			log.Fatalf("failed to seed game %q: %v", g.title, err)
		}
		for _, gn := range g.genres {
			if _, err := db.Exec(`
				INSERT INTO game_genres (game_id, genre_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, id, genreIDs[gn]); err != nil {
				log.Fatalf("failed to link genre: %v", err)
			}
		}
		for _, p := range g.platforms {
			if _, err := db.Exec(`
				INSERT INTO game_platforms (game_id, platform_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, id, platformIDs[p]); err != nil {
				log.Fatalf("failed to link platform: %v", err)
			}
		}
		fmt.Printf("seeded game: id=%d title=%q\n", id, g.title)
	}

	email := "demo@eshopexpress.ca"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var userID int64
	if err := db.QueryRow(`
		INSERT INTO users (username, email, password, first_name, last_name,
			address, city, province, postal_code, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, "demoUser", email, hash, "Demo", "Customer",
		"123 Bay Street", "Toronto", "ON", "M5J 2N8").Scan(&userID); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", userID, email, password)
}
