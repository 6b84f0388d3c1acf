package providerRepo

import (
	"context"

	"opaleka/database"
	"opaleka/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProviderDetailsRepository manages per-provider onboarding attributes.
type ProviderDetailsRepository interface {
	// SetPaymentStatus upserts the provider's payment onboarding flag.
	SetPaymentStatus(ctx context.Context, providerID, status string) error

	// GetByUserID returns the provider's details, or (nil, nil) if none exist
	// yet (the provider has not been onboarded for billing).
	GetByUserID(ctx context.Context, providerID string) (*models.ProviderDetails, error)
}

type mongoProviderDetailsRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderDetailsRepo returns a ProviderDetailsRepository backed by MongoDB.
func NewMongoProviderDetailsRepo() ProviderDetailsRepository {
	return &mongoProviderDetailsRepo{coll: database.DB().Collection("provider_details")}
}
