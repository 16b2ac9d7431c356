package repository

import "github.com/eshopexpress/backend/internal/domain/entity"

// OrderRepository defines the interface for order-related database
// operations. FindByID returns (nil, nil) when no row matches.
type OrderRepository interface {
	FindAll() ([]*entity.Order, error)
	FindByID(id int64) (*entity.Order, error)
	FindByCustomerID(userID int64) ([]*entity.Order, error)
	FindByFirstName(firstName string) ([]*entity.Order, error)
	FindByLastName(lastName string) ([]*entity.Order, error)
	FindByEmail(email string) ([]*entity.Order, error)
	FindByFullName(firstName, lastName string) ([]*entity.Order, error)
	// Create inserts the order and its line items in one transaction and
	// backfills the generated ids.
	Create(o *entity.Order) error
	UpdateStatus(id int64, status entity.OrderStatus) error
}
