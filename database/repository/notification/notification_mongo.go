package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"opaleka/models"

	"github.com/google/uuid"
)

// Create appends a new notification and returns its ID.
func (r *mongoNotificationRepo) Create(ctx context.Context, notification models.Notification) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	notification.Read = false

	if _, err := r.coll.InsertOne(ctx, notification); err != nil {
		return "", fmt.Errorf("failed to insert notification: %w", err)
	}
	return notification.ID, nil
}
