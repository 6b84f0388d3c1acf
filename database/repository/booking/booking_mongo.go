package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"opaleka/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *mongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking record.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// GetByID returns a booking by its unique ID, or (nil, nil) if absent.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// CountByProvider returns how many bookings exist for a provider, any status.
func (r *mongoBookingRepo) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for provider %s: %w", providerID, err)
	}
	return count, nil
}

// UpdateStatusIfCurrent performs a conditional status transition. The filter
// includes the expected current status so a concurrent transition on the same
// booking cannot be overwritten silently.
func (r *mongoBookingRepo) UpdateStatusIfCurrent(ctx context.Context, id, from, to string, extra bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to}
	for k, v := range extra {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return &updated, nil
}

// StampEffect records a side-effect timestamp on a booking.
func (r *mongoBookingRepo) StampEffect(ctx context.Context, id string, field string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{field: time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to stamp %s on booking %s: %w", field, id, err)
	}
	return nil
}

func (r *mongoBookingRepo) findSorted(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByProviderAndStatus returns a provider's bookings in one status, newest first.
func (r *mongoBookingRepo) ListByProviderAndStatus(ctx context.Context, providerID, status string) ([]models.Booking, error) {
	return r.findSorted(ctx, bson.M{"providerId": providerID, "status": status})
}

// ListByClientAndStatus returns a client's bookings in one status, newest first.
func (r *mongoBookingRepo) ListByClientAndStatus(ctx context.Context, clientID, status string) ([]models.Booking, error) {
	return r.findSorted(ctx, bson.M{"userId": clientID, "status": status})
}

// DeleteByID hard-deletes a booking.
func (r *mongoBookingRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

// DeleteOwnedPending deletes a booking only when it is still pending and owned
// by the given client. The ownership and status checks live in the filter so
// the delete is atomic.
func (r *mongoBookingRepo) DeleteOwnedPending(ctx context.Context, id, clientID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{
		"id":     id,
		"userId": clientID,
		"status": models.BookingStatusPending,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete pending booking %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
