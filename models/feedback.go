package models

import "time"

// Feedback is a customer review of a branch/service pairing. Published
// feedback is visible to unauthenticated visitors.
type Feedback struct {
	ID        string    `bson:"id" json:"id"`
	Rating    int       `bson:"rating" json:"rating"`
	Review    string    `bson:"review" json:"review"`
	Branch    string    `bson:"branch" json:"branch"`
	Service   string    `bson:"service" json:"service"`
	UserID    string    `bson:"user" json:"user"`
	UserName  string    `bson:"userName" json:"userName"`
	Date      string    `bson:"date" json:"date"`
	Published bool      `bson:"published" json:"published"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
