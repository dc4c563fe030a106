package models

import "time"

// Booking lifecycle statuses, staff-driven.
const (
	BookingStatusPending    = "Pending"
	BookingStatusInProgress = "In Progress"
	BookingStatusCompleted  = "Completed"
)

// Final settlement methods.
const (
	PaymentMethodCash   = "Cash"
	PaymentMethodStripe = "Stripe"
)

// BookingDateLayout is the day-granularity date encoding used for all
// capacity and conflict checks.
const BookingDateLayout = "2006-01-02"

// VehicleRef is a denormalized vehicle snapshot taken at booking time.
type VehicleRef struct {
	VehicleID   string `bson:"vehicleId" json:"vehicleId"`
	VehicleName string `bson:"vehicleName" json:"vehicleName"`
}

// BranchRef is a denormalized branch snapshot taken at booking time.
type BranchRef struct {
	BranchID   string `bson:"branchId" json:"branchId"`
	BranchName string `bson:"branchName" json:"branchName"`
}

// BookingNote is a staff annotation on a booking, removable by id.
type BookingNote struct {
	ID        string `bson:"id" json:"id"`
	StaffName string `bson:"staffName" json:"staffName"`
	Note      string `bson:"note" json:"note"`
	Date      string `bson:"date" json:"date"`
}

// BillItem is a single repair line on the final bill.
type BillItem struct {
	ID     string  `bson:"id" json:"id"`
	Repair string  `bson:"repair" json:"repair"`
	Cost   float64 `bson:"cost" json:"cost"`
}

// Booking is the central entity. A row exists only after the advance payment
// has been confirmed via webhook; the pre-payment request lives solely in the
// checkout session metadata.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	Vehicle       VehicleRef    `bson:"vehicle" json:"vehicle"`
	Customer      string        `bson:"customer" json:"customer"`
	CustomerName  string        `bson:"customerName" json:"customerName"`
	Service       string        `bson:"service" json:"service"`
	Branch        BranchRef     `bson:"branch" json:"branch"`
	Date          string        `bson:"date" json:"date"` // YYYY-MM-DD, no time component
	Description   string        `bson:"description" json:"description"`
	Status        string        `bson:"status" json:"status"`
	Notes         []BookingNote `bson:"notes" json:"notes"`
	Bill          []BillItem    `bson:"bill" json:"bill"`
	BillPayment   bool          `bson:"billPayment" json:"billPayment"`
	PaymentDate   *time.Time    `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	PaymentMethod string        `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// BillTotal sums the bill line costs.
func (b *Booking) BillTotal() float64 {
	var total float64
	for _, item := range b.Bill {
		total += item.Cost
	}
	return total
}
