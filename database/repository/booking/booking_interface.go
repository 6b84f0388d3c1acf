package bookingRepo

import (
	"context"
	"fmt"

	"opaleka/database"
	"opaleka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines data access for booking records.
//
// Lookup methods return (nil, nil) when no document matches, so callers can
// distinguish "missing" from infrastructure errors.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	CountByProvider(ctx context.Context, providerID string) (int64, error)

	// UpdateStatusIfCurrent atomically moves a booking from one status to
	// another, applying any extra field updates in the same write. It returns
	// the updated document, or (nil, nil) if no booking matched id+from.
	UpdateStatusIfCurrent(ctx context.Context, id, from, to string, extra bson.M) (*models.Booking, error)

	// StampEffect records a side-effect marker (notifiedAt / emailedAt) on an
	// already-committed booking.
	StampEffect(ctx context.Context, id string, field string) error

	ListByProviderAndStatus(ctx context.Context, providerID, status string) ([]models.Booking, error)
	ListByClientAndStatus(ctx context.Context, clientID, status string) ([]models.Booking, error)

	DeleteByID(ctx context.Context, id string) error

	// DeleteOwnedPending removes a booking only if it belongs to the client
	// and is still pending. Returns true if a document was deleted.
	DeleteOwnedPending(ctx context.Context, id, clientID string) (bool, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}
