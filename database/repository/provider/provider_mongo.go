package providerRepo

import (
	"context"
	"fmt"
	"time"

	"opaleka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetPaymentStatus upserts the payment onboarding flag for a provider.
func (r *mongoProviderDetailsRepo) SetPaymentStatus(ctx context.Context, providerID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": providerID},
		bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now()}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to set payment status for provider %s: %w", providerID, err)
	}
	return nil
}

// GetByUserID returns the provider's onboarding details, or (nil, nil) if absent.
func (r *mongoProviderDetailsRepo) GetByUserID(ctx context.Context, providerID string) (*models.ProviderDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var details models.ProviderDetails
	if err := r.coll.FindOne(ctx, bson.M{"userId": providerID}).Decode(&details); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch provider details for %s: %w", providerID, err)
	}
	return &details, nil
}
