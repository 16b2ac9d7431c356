package repository

import (
	"time"

	"github.com/eshopexpress/backend/internal/domain/entity"
)

// GameRepository defines the interface for game-related database operations.
// Single-record lookups return (nil, nil) when no row matches; absence is
// not an error at this layer.
type GameRepository interface {
	FindAll() ([]*entity.Game, error)
	FindByID(id int64) (*entity.Game, error)
	// FindByTitle matches the title by case-insensitive substring.
	FindByTitle(title string) ([]*entity.Game, error)
	// FindByPlatformID returns games whose platform set contains the platform.
	FindByPlatformID(platformID int64) ([]*entity.Game, error)
	// FindByGenreID returns games whose genre set contains the genre.
	FindByGenreID(genreID int64) ([]*entity.Game, error)
	// FindReleasedAfter returns games released strictly after the date,
	// most recent first.
	FindReleasedAfter(date time.Time) ([]*entity.Game, error)
	// FindRecentReleases is FindReleasedAfter capped at limit rows.
	FindRecentReleases(date time.Time, limit int) ([]*entity.Game, error)
	// FindByMinimumRating returns games with averageRating >= min. Games
	// without a rating are excluded.
	FindByMinimumRating(min float64) ([]*entity.Game, error)
	// FindRecommended returns games matching at least one of the genres and
	// at least one of the platforms, excluding the given game ids.
	FindRecommended(genreIDs, platformIDs, excludeGameIDs []int64) ([]*entity.Game, error)
	// Save upserts the game and its genre/platform memberships. A zero ID
	// inserts and backfills the generated id.
	Save(g *entity.Game) error
	DeleteByID(id int64) error
}
