package models

import "time"

// Booking statuses. Transitions only move forward: pending bookings are
// confirmed or rejected by the provider, confirmed bookings are completed.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusRejected  = "rejected"
)

// Booking represents a client's request for a provider's service.
type Booking struct {
	ID            string     `bson:"id" json:"id"`
	UserID        string     `bson:"userId" json:"userId"`         // Client who requested the service
	ProviderID    string     `bson:"providerId" json:"providerId"` // Provider being booked
	ServiceName   string     `bson:"serviceName" json:"serviceName"`
	Date          string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time          string     `bson:"time" json:"time"` // "HH:mm"
	Price         float64    `bson:"price" json:"price"`
	Address       string     `bson:"address" json:"address"`
	Status        string     `bson:"status" json:"status"`
	PendingRating bool       `bson:"pendingRating" json:"pendingRating"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	NotifiedAt    *time.Time `bson:"notifiedAt,omitempty" json:"notifiedAt,omitempty"` // In-app notification written
	EmailedAt     *time.Time `bson:"emailedAt,omitempty" json:"emailedAt,omitempty"`   // Email dispatch succeeded
}
