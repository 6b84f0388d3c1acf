package booking

import (
	"context"

	bookingRepo "opaleka/database/repository/booking"
	notificationRepo "opaleka/database/repository/notification"
	providerRepo "opaleka/database/repository/provider"
	userRepo "opaleka/database/repository/user"
	"opaleka/models"
	"opaleka/services/mailer"
)

// BookServiceRequest carries the fields of a new booking request.
type BookServiceRequest struct {
	UserID      string  `json:"userId"`
	ProviderID  string  `json:"providerId"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
}

// History views available to a client. HistoryAll lists pending requests: the
// client's "all" tab shows requests still awaiting a provider decision, while
// decided bookings live under their own tabs.
const (
	HistoryAll       = "all"
	HistoryCompleted = "completed"
	HistoryRejected  = "rejected"
)

// BookingService orchestrates the booking lifecycle: creation, provider
// decisions, completion, role-scoped deletion and history views.
type BookingService interface {
	BookService(ctx context.Context, req BookServiceRequest) (*models.Booking, error)
	AcceptBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	RejectBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CompleteJob(ctx context.Context, bookingID string) (*models.Booking, error)

	DeleteCompleted(ctx context.Context, bookingID string) error
	DeleteRejected(ctx context.Context, bookingID string) error
	DeletePending(ctx context.Context, bookingID, clientID string) error

	ProviderBookings(ctx context.Context, providerID, status string) ([]models.ProviderBookingView, error)
	ClientHistory(ctx context.Context, clientID, view string) ([]models.ClientHistoryView, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingRepository
	Users         userRepo.UserRepository
	Notifications notificationRepo.NotificationRepository
	Providers     providerRepo.ProviderDetailsRepository
	Mailer        mailer.Mailer
	AssetBaseURL  string
}
