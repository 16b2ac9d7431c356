package repository

import "github.com/eshopexpress/backend/internal/domain/entity"

// GenreRepository defines the interface for genre lookups.
type GenreRepository interface {
	FindAll() ([]*entity.Genre, error)
	FindByID(id int64) (*entity.Genre, error)
	// FindByNameContaining resolves a genre by case-insensitive substring
	// match on its name; (nil, nil) when nothing matches.
	FindByNameContaining(name string) (*entity.Genre, error)
	Save(g *entity.Genre) error
	DeleteByID(id int64) error
}
