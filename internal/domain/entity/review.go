package entity

import "time"

// Review is a user rating for a game. Rating is an integer from 1 to 5.
type Review struct {
	ID        int64
	GameID    int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
