package booking

import (
	"fmt"

	"opaleka/models"
)

// Sender display names used on outbound mail.
const (
	fromBookings = "Opaleka Bookings"
	fromSupport  = "Opaleka Support"
	fromTeam     = "Opaleka Team"
)

func emailRow(label, value string) string {
	return fmt.Sprintf(`<tr>
  <td style="padding: 8px; border: 1px solid #e0e0e0; background-color: #f9f9f9; font-weight: bold;">%s</td>
  <td style="padding: 8px; border: 1px solid #e0e0e0;">%s</td>
</tr>`, label, value)
}

func emailTable(rows ...string) string {
	body := ""
	for _, r := range rows {
		body += r
	}
	return `<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">` + body + `</table>`
}

func emailWrap(heading, inner string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
  <h2 style="color: #1a237e;">%s</h2>
%s
  <p>Best Regards,</p>
  <p><strong>Opaleka Team</strong></p>
</div>`, heading, inner)
}

// newBookingEmail is sent to the provider when a client books a service.
func newBookingEmail(provider, client *models.User, req BookServiceRequest) (subject, body string) {
	subject = fmt.Sprintf("New Booking Notification - %s", req.ServiceName)
	inner := fmt.Sprintf(`  <p>Dear <strong>%s</strong>,</p>
  <p>You have received a new booking request from <strong>%s</strong>. Please find the details below:</p>
%s
  <p>To view more details, please log in to your dashboard.</p>`,
		provider.Name, client.Name,
		emailTable(
			emailRow("Service", req.ServiceName),
			emailRow("Date", req.Date),
			emailRow("Time", req.Time),
			emailRow("Price", fmt.Sprintf("N$%.2f", req.Price)),
			emailRow("Client Email", client.Email),
			emailRow("Client Phone", client.Phone),
			emailRow("Client Address", req.Address),
		))
	return subject, emailWrap("New Booking Received", inner)
}

// confirmationEmail is sent to the client when the provider accepts.
func confirmationEmail(clientName string, b *models.Booking) (subject, body string) {
	subject = fmt.Sprintf("Your Booking is Confirmed - %s", b.ServiceName)
	inner := fmt.Sprintf(`  <p>Dear <strong>%s</strong>,</p>
  <p>We are pleased to inform you that your booking for <strong>%s</strong> has been successfully confirmed.</p>
%s
  <p>For any questions or further assistance, feel free to contact your service provider.</p>
  <p>Thank you for choosing Opaleka! We hope you have a great experience.</p>`,
		clientName, b.ServiceName,
		emailTable(
			emailRow("Date", formatDate(b.Date)),
			emailRow("Time", formatTime(b.Time)),
		))
	return subject, emailWrap("Your Booking is Confirmed", inner)
}

// rejectionEmail is sent to the client when the provider rejects.
func rejectionEmail(clientName string, b *models.Booking) (subject, body string) {
	subject = fmt.Sprintf("Booking Rejected - %s", b.ServiceName)
	inner := fmt.Sprintf(`  <p>Dear <strong>%s</strong>,</p>
  <p>We regret to inform you that your booking request for <strong>%s</strong> has been rejected.</p>
%s
  <p>We apologize for any inconvenience. If you have any questions, feel free to reach out to our support team.</p>
  <p>You may try booking another provider or rescheduling your appointment.</p>`,
		clientName, b.ServiceName,
		emailTable(
			emailRow("Date", formatDate(b.Date)),
			emailRow("Time", formatTime(b.Time)),
		))
	return subject, emailWrap("Your Booking Request Has Been Rejected", inner)
}

// completionEmail is sent to the client when the job is done, including the
// provider's contact so the client can follow up or rate them.
func completionEmail(clientName string, provider *models.User, b *models.Booking) (subject, body string) {
	subject = fmt.Sprintf("Job Completed - %s", b.ServiceName)
	inner := fmt.Sprintf(`  <p>Dear <strong>%s</strong>,</p>
  <p>Your booking for <strong>%s</strong> has been successfully completed.</p>
%s
  <p>We hope you had a great experience! Please take a moment to <strong>rate your service provider</strong>.</p>
  <p>Your feedback helps improve the quality of services on Opaleka.</p>`,
		clientName, b.ServiceName,
		emailTable(
			emailRow("Date", formatDate(b.Date)),
			emailRow("Time", formatTime(b.Time)),
			emailRow("Provider", fmt.Sprintf("%s (%s)", provider.Name, provider.Email)),
		))
	return subject, emailWrap("Your Job is Completed", inner)
}
