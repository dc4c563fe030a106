package models

import "time"

// Roles assignable to an account.
const (
	RoleCustomer = "Customer"
	RoleStaff    = "Staff"
	RoleManager  = "Manager"
)

// Image is a stored Cloudinary asset reference.
type Image struct {
	URL      string `bson:"url" json:"url"`
	Filename string `bson:"filename" json:"filename"`
}

// User represents a customer or staff account. Staff and managers carry the
// branch they are assigned to; customers do not.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"password" json:"-"` // bcrypt hash
	Role         string    `bson:"role" json:"role"`
	Phone        string    `bson:"phone" json:"phone"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	RefreshToken string    `bson:"refreshToken,omitempty" json:"-"` // SHA-256 hash
	Image        Image     `bson:"image" json:"image"`
	Branch       string    `bson:"branch,omitempty" json:"branch,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
