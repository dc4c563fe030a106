package models

import "time"

// Intent kinds carried in checkout session metadata.
const (
	IntentKindAdvance = "advance"
	IntentKindFinal   = "final"
)

// BookingRequest is the transient payload of a booking attempt. It is never
// persisted as a booking; it rides in the checkout session metadata until the
// advance payment is confirmed.
type BookingRequest struct {
	Vehicle     VehicleInput `json:"vehicle" binding:"required"`
	Service     string       `json:"service" binding:"required"`
	Branch      BranchInput  `json:"branch" binding:"required"`
	Date        string       `json:"date" binding:"required"`
	Description string       `json:"description"`

	// Filled from the authenticated token payload, not the request body.
	CustomerID    string `json:"-"`
	CustomerName  string `json:"-"`
	CustomerEmail string `json:"-"`
}

// VehicleInput identifies the vehicle a customer wants serviced.
type VehicleInput struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// BranchInput identifies the branch a customer books at.
type BranchInput struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// PendingIntent tracks an issued checkout session until it settles or its TTL
// expires. Stored in Redis keyed by intent id.
type PendingIntent struct {
	IntentID  string         `json:"intentId"`
	Kind      string         `json:"kind"` // advance or final
	BookingID string         `json:"bookingId,omitempty"`
	Amount    float64        `json:"amount"`
	Request   BookingRequest `json:"request,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Lifecycle of a webhook event record. A pending event was claimed for
// settlement but its side effects have not been confirmed yet; an applied
// event is fully settled and redeliveries of it are ignored.
const (
	EventStatusPending = "pending"
	EventStatusApplied = "applied"
)

// ProcessedEvent records a webhook event id for idempotent settlement.
type ProcessedEvent struct {
	EventID    string    `bson:"eventId" json:"eventId"`
	EventType  string    `bson:"eventType" json:"eventType"`
	IntentKind string    `bson:"intentKind,omitempty" json:"intentKind,omitempty"`
	Status     string    `bson:"status" json:"status"`
	ReceivedAt time.Time `bson:"received_at" json:"received_at"`
	AppliedAt  time.Time `bson:"appliedAt,omitempty" json:"appliedAt,omitempty"`
}
