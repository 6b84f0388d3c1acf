package booking

import (
	"context"

	"opaleka/models"
	"opaleka/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type operation string

const (
	opAccept   operation = "accept"
	opReject   operation = "reject"
	opComplete operation = "complete"
)

type edge struct {
	from string
	to   string
}

// transitionTable is the whole state machine. Any (current status, operation)
// pair not listed here is rejected, so a terminal booking can never move again
// and a rejected booking can never be re-accepted.
var transitionTable = map[operation]edge{
	opAccept:   {from: models.BookingStatusPending, to: models.BookingStatusConfirmed},
	opReject:   {from: models.BookingStatusPending, to: models.BookingStatusRejected},
	opComplete: {from: models.BookingStatusConfirmed, to: models.BookingStatusCompleted},
}

// transition applies one state-machine edge with a conditional update. The
// repository filter includes the expected current status, so two concurrent
// transitions on the same booking cannot both win.
func (svc *DefaultBookingService) transition(ctx context.Context, bookingID string, op operation, extra bson.M) (*models.Booking, error) {
	logger := utils.GetLogger()

	e, ok := transitionTable[op]
	if !ok {
		return nil, newError(CodeInvalidState, "Unknown booking operation.")
	}

	updated, err := svc.Bookings.UpdateStatusIfCurrent(ctx, bookingID, e.from, e.to, extra)
	if err != nil {
		logger.Error("Booking transition failed",
			zap.String("bookingId", bookingID),
			zap.String("operation", string(op)),
			zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while updating the booking.")
	}
	if updated != nil {
		return updated, nil
	}

	// The conditional update matched nothing: either the booking is missing or
	// its current status is not the expected pre-state.
	current, err := svc.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("Booking lookup after failed transition",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while updating the booking.")
	}
	if current == nil {
		return nil, newError(CodeNotFound, "Booking not found.")
	}
	if current.Status == e.from {
		// It held the right status on re-read, yet the conditional write lost.
		return nil, newError(CodeConflict, "Booking was modified concurrently, please retry.")
	}
	return nil, newError(CodeInvalidState,
		"Cannot %s a booking that is %s.", op, current.Status)
}
