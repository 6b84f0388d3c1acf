package models

import "time"

// Provider payment onboarding states.
const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
)

// ProviderDetails carries per-provider onboarding attributes. PaymentStatus is
// set to Unpaid exactly once, when the provider receives their first booking,
// and is never reset by the booking service.
type ProviderDetails struct {
	UserID        string    `bson:"userId" json:"userId"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
