package repository

import "github.com/eshopexpress/backend/internal/domain/entity"

// PlatformRepository defines the interface for platform lookups.
type PlatformRepository interface {
	FindAll() ([]*entity.Platform, error)
	FindByID(id int64) (*entity.Platform, error)
	// FindByNameContaining resolves a platform by case-insensitive substring
	// match on its name; (nil, nil) when nothing matches.
	FindByNameContaining(name string) (*entity.Platform, error)
	Save(p *entity.Platform) error
	DeleteByID(id int64) error
}
