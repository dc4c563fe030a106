package models

import "time"

// Branch is a garage location offering services.
type Branch struct {
	ID         string    `bson:"id" json:"id"`
	BranchName string    `bson:"branchName" json:"branchName"`
	Location   string    `bson:"location" json:"location"`
	Phone      string    `bson:"phone" json:"phone"`
	Longitude  float64   `bson:"longitude" json:"longitude"`
	Latitude   float64   `bson:"latitude" json:"latitude"`
	Image      Image     `bson:"image" json:"image"`
	StaffIDs   []string  `bson:"staffs" json:"staffs"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
