// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"fmt"
	"time"

	"drivewell/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoBookingRepo) findAll(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetByCustomer returns all bookings owned by a customer.
func (r *MongoBookingRepo) GetByCustomer(customerID string) ([]models.Booking, error) {
	return r.findAll(bson.M{"customer": customerID})
}

// GetByBranchName returns all bookings placed at a branch.
func (r *MongoBookingRepo) GetByBranchName(branchName string) ([]models.Booking, error) {
	return r.findAll(bson.M{"branch.branchName": branchName})
}

// GetSince returns bookings on or after the given day, for dashboard stats.
func (r *MongoBookingRepo) GetSince(date string) ([]models.Booking, error) {
	return r.findAll(bson.M{"date": bson.M{"$gte": date}})
}

// CountAll returns the total number of bookings.
func (r *MongoBookingRepo) CountAll() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// CountForSlot counts confirmed bookings for a (date, branch, service) triple.
func (r *MongoBookingRepo) CountForSlot(date, branchName, serviceName string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"date":              date,
		"branch.branchName": branchName,
		"service":           serviceName,
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for slot: %w", err)
	}
	return count, nil
}

// ExistsForVehicleOnDate reports whether the vehicle already has a booking on
// the given day, regardless of branch or service.
func (r *MongoBookingRepo) ExistsForVehicleOnDate(date, vehicleID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"date": date, "vehicle.vehicleId": vehicleID}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle booking: %w", err)
	}
	return count > 0, nil
}

// UnavailableDates returns the dates whose booking count for the branch and
// service has reached the threshold. The threshold is softer than the hard
// capacity cap so near-full days stop being offered slightly early.
func (r *MongoBookingRepo) UnavailableDates(branchName, serviceName string, threshold int) ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"service":           serviceName,
			"branch.branchName": branchName,
		}},
		{"$group": bson.M{
			"_id":   "$date",
			"count": bson.M{"$sum": 1},
		}},
		{"$match": bson.M{
			"count": bson.M{"$gte": threshold},
		}},
		{"$project": bson.M{"_id": 1}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate unavailable dates: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode unavailable dates: %w", err)
	}

	dates := make([]string, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}
	return dates, nil
}
