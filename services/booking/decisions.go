package booking

import (
	"context"
	"fmt"

	"opaleka/models"
	"opaleka/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var contactProjection = bson.M{"id": 1, "name": 1, "email": 1}

// AcceptBooking confirms a pending booking and emails the client. Accepting
// writes no in-app notification; only creation and completion do.
func (svc *DefaultBookingService) AcceptBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := svc.transition(ctx, bookingID, opAccept, nil)
	if err != nil {
		return nil, err
	}

	client, err := svc.Users.GetByIDWithProjection(ctx, booking.UserID, contactProjection)
	if err != nil || client == nil {
		logger.Error("Failed to resolve client after accept",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodeDownstream, "Booking confirmed, but the confirmation email could not be sent.")
	}

	subject, body := confirmationEmail(client.Name, booking)
	if err := svc.Mailer.Send(fromBookings, client.Email, subject, body); err != nil {
		logger.Error("Failed to email client on accept",
			zap.String("bookingId", bookingID),
			zap.String("to", client.Email),
			zap.Error(err))
		return nil, newError(CodeDownstream, "Booking confirmed, but the confirmation email could not be sent.")
	}
	svc.stampEffect(ctx, booking, "emailedAt")

	logger.Info("Booking accepted", zap.String("bookingId", bookingID))
	return booking, nil
}

// RejectBooking rejects a pending booking and emails the client. Like accept,
// this notifies via email only.
func (svc *DefaultBookingService) RejectBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := svc.transition(ctx, bookingID, opReject, nil)
	if err != nil {
		return nil, err
	}

	client, err := svc.Users.GetByIDWithProjection(ctx, booking.UserID, contactProjection)
	if err != nil || client == nil {
		logger.Error("Failed to resolve client after reject",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodeDownstream, "Booking rejected, but the client email could not be sent.")
	}

	subject, body := rejectionEmail(client.Name, booking)
	if err := svc.Mailer.Send(fromSupport, client.Email, subject, body); err != nil {
		logger.Error("Failed to email client on reject",
			zap.String("bookingId", bookingID),
			zap.String("to", client.Email),
			zap.Error(err))
		return nil, newError(CodeDownstream, "Booking rejected, but the client email could not be sent.")
	}
	svc.stampEffect(ctx, booking, "emailedAt")

	logger.Info("Booking rejected", zap.String("bookingId", bookingID))
	return booking, nil
}

// CompleteJob marks a confirmed booking as completed, flags it for rating,
// writes the client an in-app rating invitation and emails them the provider's
// contact details.
func (svc *DefaultBookingService) CompleteJob(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := svc.transition(ctx, bookingID, opComplete, bson.M{"pendingRating": true})
	if err != nil {
		return nil, err
	}

	client, err := svc.Users.GetByIDWithProjection(ctx, booking.UserID, contactProjection)
	if err != nil || client == nil {
		logger.Error("Failed to resolve client after complete",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodeDownstream, "Job completed, but the client could not be notified.")
	}
	provider, err := svc.Users.GetByIDWithProjection(ctx, booking.ProviderID, contactProjection)
	if err != nil || provider == nil {
		logger.Error("Failed to resolve provider after complete",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodeDownstream, "Job completed, but the client could not be notified.")
	}

	if _, err := svc.Notifications.Create(ctx, models.Notification{
		UserID: client.ID,
		Title:  "Job Completed",
		Message: fmt.Sprintf("Your booking for %s has been completed. You can now rate your provider.",
			booking.ServiceName),
	}); err != nil {
		logger.Error("Failed to write completion notification",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodeDownstream, "Job completed, but the client could not be notified.")
	}
	svc.stampEffect(ctx, booking, "notifiedAt")

	subject, body := completionEmail(client.Name, provider, booking)
	if err := svc.Mailer.Send(fromTeam, client.Email, subject, body); err != nil {
		logger.Error("Failed to email client on complete",
			zap.String("bookingId", bookingID),
			zap.String("to", client.Email),
			zap.Error(err))
		return nil, newError(CodeDownstream, "Job completed, but the client email could not be sent.")
	}
	svc.stampEffect(ctx, booking, "emailedAt")

	logger.Info("Job completed", zap.String("bookingId", bookingID))
	return booking, nil
}
