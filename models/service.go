package models

import "time"

// ServiceOffering is a catalog entry for a repair/maintenance service.
// Bookings reference offerings by name, not by id.
type ServiceOffering struct {
	ID          string    `bson:"id" json:"id"`
	ServiceName string    `bson:"serviceName" json:"serviceName"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Image       Image     `bson:"image" json:"image"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
