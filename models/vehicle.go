package models

import "time"

// Vehicle is a customer-owned vehicle eligible for service bookings.
type Vehicle struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"` // display name, e.g. "Honda Civic"
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	Year      int       `bson:"year" json:"year"`
	Plate     string    `bson:"plate" json:"plate"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
