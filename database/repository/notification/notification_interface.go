package notificationRepo

import (
	"context"

	"opaleka/database"
	"opaleka/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository is the append-only sink for in-app notifications.
// Reading and marking-as-read belong to the notification center, not here.
type NotificationRepository interface {
	Create(ctx context.Context, notification models.Notification) (string, error)
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository backed by MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.DB().Collection("notifications")}
}
