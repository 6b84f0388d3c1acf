package userRepo

import (
	"context"
	"fmt"

	"opaleka/database"
	"opaleka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines read access to user records. The booking service only
// resolves references; account management belongs to another service.
type UserRepository interface {
	// GetByIDWithProjection retrieves a user by ID. Pass nil for the full
	// document. Returns (nil, nil) when the user does not exist.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a UserRepository backed by MongoDB.
func NewMongoUserRepo() UserRepository {
	repo := &mongoUserRepo{coll: database.DB().Collection("users")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create user indexes: %v\n", err)
	}
	return repo
}
