package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"opaleka/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookServiceCreatesPendingBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.BookService(ctx, validRequest())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.False(t, created.PendingRating)
	assert.NotEmpty(t, created.ID)

	stored, err := env.bookings.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Plumbing", stored.ServiceName)
	assert.Equal(t, 450.0, stored.Price)

	// Provider gets the in-app notification with the structured payload.
	notes := env.notifications.forRecipient("provider-1")
	require.Len(t, notes, 1)
	assert.Equal(t, "New Booking Received", notes[0].Title)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(notes[0].Message), &payload))
	assert.Equal(t, "Plumbing", payload["serviceName"])
	assert.Equal(t, "maria@example.com", payload["clientEmail"])
	assert.Equal(t, "+264811234567", payload["clientPhone"])

	// Provider gets the email.
	emails := env.mailer.sentTo("johannes@example.com")
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].subject, "Plumbing")
	assert.Contains(t, emails[0].body, "Maria Ndapewa")
	assert.Contains(t, emails[0].body, "N$450.00")

	// Side-effect markers are stamped.
	assert.NotNil(t, created.NotifiedAt)
	assert.NotNil(t, created.EmailedAt)
}

func TestBookServiceReportsMissingFields(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.ServiceName = ""
	req.Address = ""

	_, err := env.svc.BookService(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
	assert.Contains(t, err.Error(), "serviceName")
	assert.Contains(t, err.Error(), "address")

	// No side effects before validation passes.
	assert.Empty(t, env.notifications.notifications)
	assert.Empty(t, env.mailer.sent)
	assert.Empty(t, env.bookings.bookings)
}

func TestBookServiceRejectsNegativePrice(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Price = -5

	_, err := env.svc.BookService(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestBookServiceUnknownParties(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := validRequest()
	req.ProviderID = "ghost"
	_, err := env.svc.BookService(ctx, req)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
	assert.Contains(t, err.Error(), "provider")

	req = validRequest()
	req.UserID = "ghost"
	_, err = env.svc.BookService(ctx, req)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
	assert.Contains(t, err.Error(), "Client")
}

func TestFirstBookingSetsPaymentFlagOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.BookService(ctx, validRequest())
	require.NoError(t, err)

	details, err := env.providers.GetByUserID(ctx, "provider-1")
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, models.PaymentStatusUnpaid, details.PaymentStatus)
	assert.Equal(t, 1, env.providers.setCalls)

	_, err = env.svc.BookService(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, env.providers.setCalls, "second booking must not rewrite the flag")
}

func TestEmailFailureDoesNotRollBackBooking(t *testing.T) {
	env := newTestEnv()
	env.mailer.failWith = errors.New("smtp: connection refused")
	ctx := context.Background()

	_, err := env.svc.BookService(ctx, validRequest())
	require.Error(t, err)
	assert.Equal(t, CodeDownstream, ErrorCode(err))

	// The ledger write and the notification both committed before the email
	// attempt; the failure is surfaced without undoing them.
	require.Len(t, env.bookings.bookings, 1)
	for _, b := range env.bookings.bookings {
		assert.Equal(t, models.BookingStatusPending, b.Status)
		assert.NotNil(t, b.NotifiedAt)
		assert.Nil(t, b.EmailedAt)
	}
	assert.Len(t, env.notifications.forRecipient("provider-1"), 1)
}

func (env *testEnv) mustBook(t *testing.T) *models.Booking {
	t.Helper()
	created, err := env.svc.BookService(context.Background(), validRequest())
	require.NoError(t, err)
	return created
}

func TestAcceptBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	updated, err := env.svc.AcceptBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
	assert.False(t, updated.PendingRating)

	// Client is emailed with the human-readable schedule.
	emails := env.mailer.sentTo("maria@example.com")
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].subject, "Confirmed")
	assert.Contains(t, emails[0].body, "Saturday, March 1, 2025")
	assert.Contains(t, emails[0].body, "02:00 PM")

	// Accepting writes no in-app notification; the client still has none.
	assert.Empty(t, env.notifications.forRecipient("client-1"))
}

func TestRejectBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	updated, err := env.svc.RejectBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, updated.Status)

	emails := env.mailer.sentTo("maria@example.com")
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].subject, "Rejected")
	assert.Empty(t, env.notifications.forRecipient("client-1"))
}

func TestCompleteJob(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	_, err := env.svc.AcceptBooking(ctx, created.ID)
	require.NoError(t, err)

	completed, err := env.svc.CompleteJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	assert.True(t, completed.PendingRating)

	// Client gets the rating invitation in-app and the provider's contact by mail.
	notes := env.notifications.forRecipient("client-1")
	require.Len(t, notes, 1)
	assert.Equal(t, "Job Completed", notes[0].Title)
	assert.Contains(t, notes[0].Message, "rate your provider")

	emails := env.mailer.sentTo("maria@example.com")
	require.Len(t, emails, 2) // confirmation + completion
	assert.Contains(t, emails[1].body, "johannes@example.com")
}

func TestTransitionGuards(t *testing.T) {
	tests := []struct {
		name string
		prep func(ctx context.Context, env *testEnv, id string)
		op   func(ctx context.Context, env *testEnv, id string) error
	}{
		{
			name: "accept a rejected booking",
			prep: func(ctx context.Context, env *testEnv, id string) {
				_, err := env.svc.RejectBooking(ctx, id)
				require.NoError(t, err)
			},
			op: func(ctx context.Context, env *testEnv, id string) error {
				_, err := env.svc.AcceptBooking(ctx, id)
				return err
			},
		},
		{
			name: "reject a confirmed booking",
			prep: func(ctx context.Context, env *testEnv, id string) {
				_, err := env.svc.AcceptBooking(ctx, id)
				require.NoError(t, err)
			},
			op: func(ctx context.Context, env *testEnv, id string) error {
				_, err := env.svc.RejectBooking(ctx, id)
				return err
			},
		},
		{
			name: "complete a pending booking",
			prep: func(context.Context, *testEnv, string) {},
			op: func(ctx context.Context, env *testEnv, id string) error {
				_, err := env.svc.CompleteJob(ctx, id)
				return err
			},
		},
		{
			name: "complete a rejected booking",
			prep: func(ctx context.Context, env *testEnv, id string) {
				_, err := env.svc.RejectBooking(ctx, id)
				require.NoError(t, err)
			},
			op: func(ctx context.Context, env *testEnv, id string) error {
				_, err := env.svc.CompleteJob(ctx, id)
				return err
			},
		},
		{
			name: "accept a completed booking",
			prep: func(ctx context.Context, env *testEnv, id string) {
				_, err := env.svc.AcceptBooking(ctx, id)
				require.NoError(t, err)
				_, err = env.svc.CompleteJob(ctx, id)
				require.NoError(t, err)
			},
			op: func(ctx context.Context, env *testEnv, id string) error {
				_, err := env.svc.AcceptBooking(ctx, id)
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()
			created := env.mustBook(t)

			tc.prep(ctx, env, created.ID)
			err := tc.op(ctx, env, created.ID)
			require.Error(t, err)
			assert.Equal(t, CodeInvalidState, ErrorCode(err))
		})
	}
}

func TestTransitionOnMissingBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, op := range []func(context.Context, string) (*models.Booking, error){
		env.svc.AcceptBooking, env.svc.RejectBooking, env.svc.CompleteJob,
	} {
		_, err := op(ctx, "no-such-booking")
		require.Error(t, err)
		assert.Equal(t, CodeNotFound, ErrorCode(err))
	}
}

func TestConcurrentTransitionSurfacesConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	// The conditional write loses even though the booking still reads as
	// pending, as when a concurrent transition lands between update and re-read.
	env.bookings.forceUpdateMiss = true

	_, err := env.svc.AcceptBooking(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrorCode(err))
}

func TestDeleteCompletedGuards(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	_, err := env.svc.AcceptBooking(ctx, created.ID)
	require.NoError(t, err)

	// Confirmed is not completed; the completed-delete path must refuse.
	err = env.svc.DeleteCompleted(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidState, ErrorCode(err))
	assert.Contains(t, err.Error(), "not marked as completed")

	_, err = env.svc.CompleteJob(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteCompleted(ctx, created.ID))

	stored, err := env.bookings.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored, "hard delete leaves nothing behind")

	err = env.svc.DeleteCompleted(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestDeleteRejectedGuards(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	err := env.svc.DeleteRejected(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidState, ErrorCode(err))
	assert.Contains(t, err.Error(), "not marked as rejected")

	_, err = env.svc.RejectBooking(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, env.svc.DeleteRejected(ctx, created.ID))
}

func TestDeletePendingRequiresOwnershipAndStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	// Wrong owner.
	err := env.svc.DeletePending(ctx, created.ID, "someone-else")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))

	// Right owner, wrong status.
	_, err = env.svc.AcceptBooking(ctx, created.ID)
	require.NoError(t, err)
	err = env.svc.DeletePending(ctx, created.ID, "client-1")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))

	// Fresh pending booking, right owner.
	second := env.mustBook(t)
	require.NoError(t, env.svc.DeletePending(ctx, second.ID, "client-1"))
	stored, err := env.bookings.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestClientHistoryPartitionsByView(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	pending := env.mustBook(t)

	completed := env.mustBook(t)
	_, err := env.svc.AcceptBooking(ctx, completed.ID)
	require.NoError(t, err)
	_, err = env.svc.CompleteJob(ctx, completed.ID)
	require.NoError(t, err)

	rejected := env.mustBook(t)
	_, err = env.svc.RejectBooking(ctx, rejected.ID)
	require.NoError(t, err)

	for view, wantID := range map[string]string{
		HistoryAll:       pending.ID,
		HistoryCompleted: completed.ID,
		HistoryRejected:  rejected.ID,
	} {
		items, err := env.svc.ClientHistory(ctx, "client-1", view)
		require.NoError(t, err, view)
		require.Len(t, items, 1, view)
		assert.Equal(t, wantID, items[0].ID, view)
		assert.Equal(t, "Johannes Shikongo", items[0].Provider.Name)
		assert.Equal(t, "https://assets.opaleka.test/profiles/johannes.jpg", items[0].Provider.ProfileImage)
	}
}

func TestClientHistoryEmptyIsEmptyList(t *testing.T) {
	env := newTestEnv()

	items, err := env.svc.ClientHistory(context.Background(), "client-1", HistoryCompleted)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClientHistoryUnknownView(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.ClientHistory(context.Background(), "client-1", "everything")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestProviderBookingsExpandsClientDetails(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := env.mustBook(t)
	// Force distinct creation times so ordering is observable.
	env.bookings.mu.Lock()
	env.bookings.bookings[first.ID].CreatedAt = time.Now().Add(-time.Hour)
	env.bookings.mu.Unlock()
	second := env.mustBook(t)

	views, err := env.svc.ProviderBookings(ctx, "provider-1", models.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest first.
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)

	assert.Equal(t, "Maria Ndapewa", views[0].ClientName)
	assert.Equal(t, "maria@example.com", views[0].Email)
	assert.Equal(t, "+264811234567", views[0].Phone)
	assert.Equal(t, "12 Main St", views[0].Address)
	assert.Equal(t, "https://assets.opaleka.test/profiles/maria.jpg", views[0].ProfileImage)
}

func TestProviderBookingsUnknownStatus(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.ProviderBookings(context.Background(), "provider-1", "archived")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestNotificationFailureSurfacesAfterLedgerCommit(t *testing.T) {
	env := newTestEnv()
	env.notifications.failWith = errors.New("mongo: write concern error")
	ctx := context.Background()

	_, err := env.svc.BookService(ctx, validRequest())
	require.Error(t, err)
	assert.Equal(t, CodeDownstream, ErrorCode(err))

	// Ledger write stands; the email step was never reached.
	require.Len(t, env.bookings.bookings, 1)
	assert.Empty(t, env.mailer.sent)
}

func TestRejectedSubjectMentionsService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created := env.mustBook(t)

	_, err := env.svc.RejectBooking(ctx, created.ID)
	require.NoError(t, err)

	emails := env.mailer.sentTo("maria@example.com")
	require.Len(t, emails, 1)
	assert.True(t, strings.HasSuffix(emails[0].subject, "Plumbing"))
}
