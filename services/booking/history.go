package booking

import (
	"context"

	"opaleka/models"
	"opaleka/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var profileProjection = bson.M{"id": 1, "name": 1, "email": 1, "phone": 1, "profileImage": 1}

// validListStatuses are the statuses a provider may filter their bookings by.
var validListStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCompleted: true,
	models.BookingStatusRejected:  true,
}

// historyStatus maps a client history view to the ledger status it lists.
// The "all" view shows pending requests: decided bookings already have their
// own completed and rejected tabs.
var historyStatus = map[string]string{
	HistoryAll:       models.BookingStatusPending,
	HistoryCompleted: models.BookingStatusCompleted,
	HistoryRejected:  models.BookingStatusRejected,
}

func (svc *DefaultBookingService) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return svc.AssetBaseURL + path
}

// userCache resolves users once per listing, however many bookings they appear in.
type userCache struct {
	svc   *DefaultBookingService
	users map[string]*models.User
}

func (c *userCache) get(ctx context.Context, id string) (*models.User, error) {
	if u, ok := c.users[id]; ok {
		return u, nil
	}
	u, err := c.svc.Users.GetByIDWithProjection(ctx, id, profileProjection)
	if err != nil {
		return nil, err
	}
	c.users[id] = u
	return u, nil
}

// ProviderBookings lists a provider's bookings in one status, newest first,
// each expanded with the client's contact details for list rendering.
func (svc *DefaultBookingService) ProviderBookings(ctx context.Context, providerID, status string) ([]models.ProviderBookingView, error) {
	logger := utils.GetLogger()

	if !validListStatuses[status] {
		return nil, newError(CodeValidation, "Unknown booking status %q.", status)
	}

	bookings, err := svc.Bookings.ListByProviderAndStatus(ctx, providerID, status)
	if err != nil {
		logger.Error("Failed to list provider bookings",
			zap.String("providerId", providerID),
			zap.String("status", status),
			zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while fetching bookings.")
	}

	cache := &userCache{svc: svc, users: make(map[string]*models.User)}
	views := make([]models.ProviderBookingView, 0, len(bookings))
	for _, b := range bookings {
		client, err := cache.get(ctx, b.UserID)
		if err != nil {
			logger.Error("Failed to resolve booking client",
				zap.String("bookingId", b.ID), zap.Error(err))
			return nil, newError(CodeDownstream, "An error occurred while fetching bookings.")
		}
		view := models.ProviderBookingView{
			ID:          b.ID,
			ServiceName: b.ServiceName,
			Date:        b.Date,
			Time:        b.Time,
			Price:       b.Price,
			Address:     b.Address,
		}
		if client != nil {
			view.ClientName = client.Name
			view.Email = client.Email
			view.Phone = client.Phone
			view.ProfileImage = svc.imageURL(client.ProfileImage)
		}
		views = append(views, view)
	}
	return views, nil
}

// ClientHistory lists a client's bookings under one history view, newest
// first, expanded with the provider's details. An empty history is an empty
// list, not an error.
func (svc *DefaultBookingService) ClientHistory(ctx context.Context, clientID, view string) ([]models.ClientHistoryView, error) {
	logger := utils.GetLogger()

	status, ok := historyStatus[view]
	if !ok {
		return nil, newError(CodeValidation, "Unknown history view %q.", view)
	}

	bookings, err := svc.Bookings.ListByClientAndStatus(ctx, clientID, status)
	if err != nil {
		logger.Error("Failed to list client history",
			zap.String("clientId", clientID),
			zap.String("view", view),
			zap.Error(err))
		return nil, newError(CodeDownstream, "An error occurred while fetching history.")
	}

	cache := &userCache{svc: svc, users: make(map[string]*models.User)}
	views := make([]models.ClientHistoryView, 0, len(bookings))
	for _, b := range bookings {
		provider, err := cache.get(ctx, b.ProviderID)
		if err != nil {
			logger.Error("Failed to resolve booking provider",
				zap.String("bookingId", b.ID), zap.Error(err))
			return nil, newError(CodeDownstream, "An error occurred while fetching history.")
		}
		item := models.ClientHistoryView{
			ID:          b.ID,
			ServiceName: b.ServiceName,
			Date:        b.Date,
			Time:        b.Time,
			Price:       b.Price,
			Address:     b.Address,
			Status:      b.Status,
			CreatedAt:   b.CreatedAt,
		}
		if provider != nil {
			item.Provider = models.HistoryProvider{
				Name:         provider.Name,
				Email:        provider.Email,
				Phone:        provider.Phone,
				ProfileImage: svc.imageURL(provider.ProfileImage),
			}
		}
		views = append(views, item)
	}
	return views, nil
}
