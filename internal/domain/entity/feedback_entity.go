package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is general feedback about the stay or the service.
type Feedback struct {
	ID         string
	UserID     string
	AuthorName string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Review is feedback about a single room. A user reviews a room at most once.
type Review struct {
	ID         string
	RoomID     string
	UserID     string
	AuthorName string
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }
