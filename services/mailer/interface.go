package mailer

// Mailer sends transactional email. Dispatch is synchronous: callers block on
// the attempt and see transport failures directly.
type Mailer interface {
	Send(fromName, to, subject, htmlBody string) error
}
