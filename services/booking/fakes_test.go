package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"opaleka/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	// forceUpdateMiss makes UpdateStatusIfCurrent report no match without
	// touching the stored document, to simulate a lost conditional write.
	forceUpdateMiss bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) CountByProvider(_ context.Context, providerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatusIfCurrent(_ context.Context, id, from, to string, extra bson.M) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceUpdateMiss {
		return nil, nil
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return nil, nil
	}
	b.Status = to
	if v, ok := extra["pendingRating"]; ok {
		b.PendingRating = v.(bool)
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) StampEffect(_ context.Context, id string, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	now := time.Now()
	switch field {
	case "notifiedAt":
		b.NotifiedAt = &now
	case "emailedAt":
		b.EmailedAt = &now
	}
	return nil
}

func (r *fakeBookingRepo) list(match func(*models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeBookingRepo) ListByProviderAndStatus(_ context.Context, providerID, status string) ([]models.Booking, error) {
	return r.list(func(b *models.Booking) bool {
		return b.ProviderID == providerID && b.Status == status
	}), nil
}

func (r *fakeBookingRepo) ListByClientAndStatus(_ context.Context, clientID, status string) ([]models.Booking, error) {
	return r.list(func(b *models.Booking) bool {
		return b.UserID == clientID && b.Status == status
	}), nil
}

func (r *fakeBookingRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) DeleteOwnedPending(_ context.Context, id, clientID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.UserID != clientID || b.Status != models.BookingStatusPending {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByIDWithProjection(_ context.Context, id string, _ bson.M) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

// fakeNotificationRepo records appended notifications.
type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failWith      error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n models.Notification) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return "", r.failWith
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, n)
	return n.ID, nil
}

func (r *fakeNotificationRepo) forRecipient(userID string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// fakeProviderDetailsRepo records payment flag writes.
type fakeProviderDetailsRepo struct {
	mu       sync.Mutex
	statuses map[string]string
	setCalls int
}

func newFakeProviderDetailsRepo() *fakeProviderDetailsRepo {
	return &fakeProviderDetailsRepo{statuses: make(map[string]string)}
}

func (r *fakeProviderDetailsRepo) SetPaymentStatus(_ context.Context, providerID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[providerID] = status
	r.setCalls++
	return nil
}

func (r *fakeProviderDetailsRepo) GetByUserID(_ context.Context, providerID string) (*models.ProviderDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status, ok := r.statuses[providerID]
	if !ok {
		return nil, nil
	}
	return &models.ProviderDetails{UserID: providerID, PaymentStatus: status}, nil
}

// sentEmail captures one dispatch attempt.
type sentEmail struct {
	fromName string
	to       string
	subject  string
	body     string
}

// fakeMailer records sends and can simulate transport failure.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentEmail
	failWith error
}

func (m *fakeMailer) Send(fromName, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentEmail{fromName: fromName, to: to, subject: subject, body: htmlBody})
	return nil
}

func (m *fakeMailer) sentTo(addr string) []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentEmail
	for _, e := range m.sent {
		if e.to == addr {
			out = append(out, e)
		}
	}
	return out
}

// testEnv bundles a service wired to fakes.
type testEnv struct {
	svc           *DefaultBookingService
	bookings      *fakeBookingRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	providers     *fakeProviderDetailsRepo
	mailer        *fakeMailer
}

func newTestEnv() *testEnv {
	users := &fakeUserRepo{users: map[string]*models.User{
		"client-1": {
			ID: "client-1", Name: "Maria Ndapewa", Email: "maria@example.com",
			Phone: "+264811234567", Role: "client", ProfileImage: "/profiles/maria.jpg",
		},
		"provider-1": {
			ID: "provider-1", Name: "Johannes Shikongo", Email: "johannes@example.com",
			Phone: "+264817654321", Role: "provider", ProfileImage: "/profiles/johannes.jpg",
		},
	}}
	env := &testEnv{
		bookings:      newFakeBookingRepo(),
		users:         users,
		notifications: &fakeNotificationRepo{},
		providers:     newFakeProviderDetailsRepo(),
		mailer:        &fakeMailer{},
	}
	env.svc = &DefaultBookingService{
		Bookings:      env.bookings,
		Users:         env.users,
		Notifications: env.notifications,
		Providers:     env.providers,
		Mailer:        env.mailer,
		AssetBaseURL:  "https://assets.opaleka.test",
	}
	return env
}

func validRequest() BookServiceRequest {
	return BookServiceRequest{
		UserID:      "client-1",
		ProviderID:  "provider-1",
		ServiceName: "Plumbing",
		Date:        "2025-03-01",
		Time:        "14:00",
		Price:       450,
		Address:     "12 Main St",
	}
}
