package entity

import "time"

// User is a storefront customer account. Password holds a bcrypt hash.
type User struct {
	ID         int64
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Address    string
	City       string
	Province   Province
	PostalCode string
	Enabled    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
