// Package handlers exposes the HTTP surface. Services are injected once at
// startup via Init.
package handlers

import (
	"drivewell/services/booking"
	"drivewell/services/catalog"
	"drivewell/services/feedback"
	"drivewell/services/storage"
	"drivewell/services/user"
	"drivewell/services/vehicle"
)

var (
	UserService     user.UserService
	VehicleService  vehicle.VehicleService
	CatalogService  catalog.CatalogService
	BookingService  booking.BookingService
	FeedbackService feedback.FeedbackService
	StorageService  storage.StorageService
)

// Init wires the service implementations the handlers delegate to.
func Init(
	users user.UserService,
	vehicles vehicle.VehicleService,
	cat catalog.CatalogService,
	bookings booking.BookingService,
	feedbacks feedback.FeedbackService,
	store storage.StorageService,
) {
	UserService = users
	VehicleService = vehicles
	CatalogService = cat
	BookingService = bookings
	FeedbackService = feedbacks
	StorageService = store
}
