package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is the aggregate root for the catalog domain.
// AverageRating is derived from the game's reviews; nil means "no reviews".
// It is recomputed on demand, never tracked incrementally.
type Game struct {
	ID            int64
	Title         string
	Description   string
	Price         decimal.Decimal
	CoverImageURL string
	ReleaseDate   time.Time
	Publisher     string
	Developer     string
	AgeRating     AgeRating
	Digital       bool
	StockQuantity int
	AverageRating *float64
	Genres        []Genre
	Platforms     []Platform
}

// HasPlatform reports whether the game is available on the given platform.
func (g *Game) HasPlatform(platformID int64) bool {
	for _, p := range g.Platforms {
		if p.ID == platformID {
			return true
		}
	}
	return false
}

// HasGenre reports whether the game belongs to the given genre.
func (g *Game) HasGenre(genreID int64) bool {
	for _, gn := range g.Genres {
		if gn.ID == genreID {
			return true
		}
	}
	return false
}
