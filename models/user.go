package models

import "time"

// User represents a platform account, either a client or a provider.
// This service only reads users; account management lives elsewhere.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         string    `bson:"role" json:"role"` // "client" or "provider"
	ProfileImage string    `bson:"profileImage" json:"profileImage"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
