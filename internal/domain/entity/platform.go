package entity

// Platform is a gaming platform (PS5, Xbox Series X, ...). Names are unique
// case-insensitively.
type Platform struct {
	ID   int64
	Name string
}
