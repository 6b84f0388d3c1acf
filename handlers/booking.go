package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"opaleka/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler builds a BookingHandler around the given service.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// respondError maps booking service error codes onto HTTP statuses and renders
// the standard failure body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch booking.ErrorCode(err) {
	case booking.CodeValidation, booking.CodeInvalidState:
		status = http.StatusBadRequest
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeUnauthorized:
		status = http.StatusUnauthorized
	case booking.CodeConflict:
		status = http.StatusConflict
	}

	message := "Internal server error."
	var svcErr *booking.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

// authedID pulls the authenticated party's ID from the context, set by the
// auth middleware under the given key.
func authedID(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized."})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized."})
		return "", false
	}
	return id, true
}

// BookServiceHandler creates a new pending booking.
func (h *BookingHandler) BookServiceHandler(c *gin.Context) {
	logger := getLogger(c)

	var req booking.BookServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid booking request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	created, err := h.Service.BookService(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Booking creation failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created, provider notified, and email sent.",
		"booking": created,
	})
}

// ProviderBookingsHandler lists the authenticated provider's bookings in one status.
func (h *BookingHandler) ProviderBookingsHandler(c *gin.Context) {
	providerID, ok := authedID(c, "providerID")
	if !ok {
		return
	}
	status := strings.ToLower(c.Param("status"))

	bookings, err := h.Service.ProviderBookings(c.Request.Context(), providerID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("%s bookings fetched successfully.", status),
		"bookings": bookings,
	})
}

// AcceptBookingHandler confirms a pending booking.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	updated, err := h.Service.AcceptBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking successfully accepted. A confirmation email has been sent to the client.",
		"booking": updated,
	})
}

// RejectBookingHandler rejects a pending booking.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	updated, err := h.Service.RejectBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking successfully rejected. An email has been sent to the client.",
		"booking": updated,
	})
}

// CompleteJobHandler marks a confirmed booking as completed.
func (h *BookingHandler) CompleteJobHandler(c *gin.Context) {
	updated, err := h.Service.CompleteJob(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job marked as completed, pending rating updated, email notification sent to the client.",
		"booking": updated,
	})
}

// DeleteCompletedHandler removes a completed job from the ledger.
func (h *BookingHandler) DeleteCompletedHandler(c *gin.Context) {
	if err := h.Service.DeleteCompleted(c.Request.Context(), c.Param("bookingId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Completed job deleted successfully."})
}

// DeleteRejectedHandler removes a rejected booking from the ledger.
func (h *BookingHandler) DeleteRejectedHandler(c *gin.Context) {
	if err := h.Service.DeleteRejected(c.Request.Context(), c.Param("bookingId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rejected booking deleted successfully."})
}

// ClientHistoryHandler lists the authenticated client's history under one view.
func (h *BookingHandler) ClientHistoryHandler(c *gin.Context) {
	clientID, ok := authedID(c, "userID")
	if !ok {
		return
	}
	view := strings.ToLower(c.Param("view"))

	history, err := h.Service.ClientHistory(c.Request.Context(), clientID, view)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

// DeletePendingHandler lets the authenticated client withdraw a pending request.
func (h *BookingHandler) DeletePendingHandler(c *gin.Context) {
	clientID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	if err := h.Service.DeletePending(c.Request.Context(), c.Param("bookingId"), clientID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pending booking deleted successfully."})
}
