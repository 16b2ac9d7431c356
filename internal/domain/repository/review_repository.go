package repository

import "github.com/eshopexpress/backend/internal/domain/entity"

// ReviewRepository defines the interface for review-related database
// operations.
type ReviewRepository interface {
	FindByGameID(gameID int64) ([]*entity.Review, error)
	FindByUserID(userID int64) ([]*entity.Review, error)
	Save(r *entity.Review) error
	DeleteByID(id int64) error
}
