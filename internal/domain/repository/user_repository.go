package repository

import "github.com/eshopexpress/backend/internal/domain/entity"

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	FindAll() ([]*entity.User, error)
	FindByID(id int64) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// Case-insensitive substring matches.
	FindByFirstName(firstName string) ([]*entity.User, error)
	FindByLastName(lastName string) ([]*entity.User, error)
	FindByCity(city string) ([]*entity.User, error)
	Save(u *entity.User) error
	DeleteByID(id int64) error
}
