package booking

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"opaleka/models"
	"opaleka/utils"

	"go.uber.org/zap"
)

// missingFields reports which required booking fields are absent, in the order
// they appear in the request body.
func missingFields(req BookServiceRequest) []string {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if req.ProviderID == "" {
		missing = append(missing, "providerId")
	}
	if req.ServiceName == "" {
		missing = append(missing, "serviceName")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if req.Price == 0 {
		missing = append(missing, "price")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	return missing
}

// BookService validates a booking request, persists it as pending, flags the
// provider's first booking for payment onboarding, notifies the provider
// in-app and sends them an email. Side effects run in that fixed order; a
// failure after the ledger write leaves the committed steps in place and is
// surfaced to the caller.
func (svc *DefaultBookingService) BookService(ctx context.Context, req BookServiceRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if missing := missingFields(req); len(missing) > 0 {
		return nil, newError(CodeValidation,
			"Validation error: Missing fields - %s.", strings.Join(missing, ", "))
	}
	if req.Price < 0 {
		return nil, newError(CodeValidation, "Validation error: price must be a non-negative number.")
	}

	provider, err := svc.Users.GetByIDWithProjection(ctx, req.ProviderID, nil)
	if err != nil {
		logger.Error("Failed to fetch provider", zap.String("providerId", req.ProviderID), zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while booking the service.")
	}
	if provider == nil {
		return nil, newError(CodeNotFound, "Service provider not found.")
	}

	client, err := svc.Users.GetByIDWithProjection(ctx, req.UserID, nil)
	if err != nil {
		logger.Error("Failed to fetch client", zap.String("userId", req.UserID), zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while booking the service.")
	}
	if client == nil {
		return nil, newError(CodeNotFound, "Client not found.")
	}

	// A provider's very first booking, regardless of client or status, opens
	// their payment onboarding.
	existing, err := svc.Bookings.CountByProvider(ctx, req.ProviderID)
	if err != nil {
		logger.Error("Failed to count provider bookings", zap.String("providerId", req.ProviderID), zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while booking the service.")
	}
	if existing == 0 {
		if err := svc.Providers.SetPaymentStatus(ctx, req.ProviderID, models.PaymentStatusUnpaid); err != nil {
			logger.Error("Failed to set provider payment status", zap.String("providerId", req.ProviderID), zap.Error(err))
			return nil, newError(CodeDownstream, "An error occurred while booking the service.")
		}
		logger.Info("First booking for provider, payment status set to Unpaid",
			zap.String("providerId", req.ProviderID))
	}

	booking := &models.Booking{
		UserID:        req.UserID,
		ProviderID:    req.ProviderID,
		ServiceName:   req.ServiceName,
		Date:          req.Date,
		Time:          req.Time,
		Price:         req.Price,
		Address:       req.Address,
		Status:        models.BookingStatusPending,
		PendingRating: false,
		CreatedAt:     time.Now(),
	}
	if err := svc.Bookings.Create(ctx, booking); err != nil {
		logger.Error("Failed to persist booking", zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while booking the service.")
	}

	payload, _ := json.Marshal(map[string]any{
		"serviceName": req.ServiceName,
		"date":        req.Date,
		"time":        req.Time,
		"price":       req.Price,
		"clientName":  client.Name,
		"clientEmail": client.Email,
		"clientPhone": client.Phone,
		"address":     req.Address,
	})
	if _, err := svc.Notifications.Create(ctx, models.Notification{
		UserID:  provider.ID,
		Title:   "New Booking Received",
		Message: string(payload),
	}); err != nil {
		logger.Error("Failed to write provider notification",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return nil, newError(CodeDownstream, "Booking was created but the provider could not be notified.")
	}
	svc.stampEffect(ctx, booking, "notifiedAt")

	subject, body := newBookingEmail(provider, client, req)
	if err := svc.Mailer.Send(fromBookings, provider.Email, subject, body); err != nil {
		logger.Error("Failed to email provider",
			zap.String("bookingId", booking.ID),
			zap.String("to", provider.Email),
			zap.Error(err))
		return nil, newError(CodeDownstream, "Booking was created but the provider email could not be sent.")
	}
	svc.stampEffect(ctx, booking, "emailedAt")

	logger.Info("Booking created, provider notified and emailed",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", req.ProviderID))
	return booking, nil
}

// stampEffect records a side-effect marker on the booking. The markers are
// advisory (they let a reconciler tell applied steps from skipped ones), so a
// failed stamp is logged and swallowed.
func (svc *DefaultBookingService) stampEffect(ctx context.Context, booking *models.Booking, field string) {
	now := time.Now()
	if err := svc.Bookings.StampEffect(ctx, booking.ID, field); err != nil {
		utils.GetLogger().Warn("Failed to stamp booking effect",
			zap.String("bookingId", booking.ID),
			zap.String("field", field),
			zap.Error(err))
		return
	}
	switch field {
	case "notifiedAt":
		booking.NotifiedAt = &now
	case "emailedAt":
		booking.EmailedAt = &now
	}
}
