package booking

import (
	"context"
	"strings"

	"opaleka/models"
	"opaleka/utils"

	"go.uber.org/zap"
)

// deleteTerminal hard-deletes a booking only when it sits in the expected
// terminal status. There is no soft delete: the record disappears from every
// history view.
func (svc *DefaultBookingService) deleteTerminal(ctx context.Context, bookingID, wantStatus, noun string) error {
	logger := utils.GetLogger()

	booking, err := svc.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("Failed to fetch booking for deletion",
			zap.String("bookingId", bookingID), zap.Error(err))
		return newError(CodeDownstream, "An error occurred while deleting the %s.", strings.ToLower(noun))
	}
	if booking == nil {
		return newError(CodeNotFound, "%s not found or already deleted.", noun)
	}
	if booking.Status != wantStatus {
		return newError(CodeInvalidState,
			"This booking is not marked as %s and cannot be deleted.", wantStatus)
	}

	if err := svc.Bookings.DeleteByID(ctx, bookingID); err != nil {
		logger.Error("Failed to delete booking",
			zap.String("bookingId", bookingID), zap.Error(err))
		return newError(CodeDownstream, "An error occurred while deleting the %s.", strings.ToLower(noun))
	}

	logger.Info("Booking deleted",
		zap.String("bookingId", bookingID), zap.String("status", wantStatus))
	return nil
}

// DeleteCompleted removes a completed job from the ledger.
func (svc *DefaultBookingService) DeleteCompleted(ctx context.Context, bookingID string) error {
	return svc.deleteTerminal(ctx, bookingID, models.BookingStatusCompleted, "Completed job")
}

// DeleteRejected removes a rejected booking from the ledger.
func (svc *DefaultBookingService) DeleteRejected(ctx context.Context, bookingID string) error {
	return svc.deleteTerminal(ctx, bookingID, models.BookingStatusRejected, "Rejected booking")
}

// DeletePending lets a client withdraw a request the provider has not acted
// on. Ownership and the pending status are checked in one atomic delete; a
// miss does not reveal whether the booking exists, belongs to someone else or
// has already been decided.
func (svc *DefaultBookingService) DeletePending(ctx context.Context, bookingID, clientID string) error {
	logger := utils.GetLogger()

	deleted, err := svc.Bookings.DeleteOwnedPending(ctx, bookingID, clientID)
	if err != nil {
		logger.Error("Failed to delete pending booking",
			zap.String("bookingId", bookingID),
			zap.String("clientId", clientID),
			zap.Error(err))
		return newError(CodeDownstream, "An error occurred while deleting the pending booking.")
	}
	if !deleted {
		return newError(CodeNotFound, "Pending booking not found or not authorized to delete.")
	}

	logger.Info("Pending booking withdrawn",
		zap.String("bookingId", bookingID), zap.String("clientId", clientID))
	return nil
}
