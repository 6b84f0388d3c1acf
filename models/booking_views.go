package models

import "time"

// ProviderBookingView is a booking as rendered in a provider's status-filtered
// list, expanded with the client's contact details.
type ProviderBookingView struct {
	ID           string  `json:"id"`
	ServiceName  string  `json:"serviceName"`
	ClientName   string  `json:"clientName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Price        float64 `json:"price"`
	Address      string  `json:"address"`
	ProfileImage string  `json:"profileImage"`
}

// HistoryProvider is the counterpart-party block embedded in a client's
// history items.
type HistoryProvider struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage"`
}

// ClientHistoryView is a booking as rendered in a client's history listing,
// expanded with the provider's details.
type ClientHistoryView struct {
	ID          string          `json:"id"`
	ServiceName string          `json:"serviceName"`
	Provider    HistoryProvider `json:"provider"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Price       float64         `json:"price"`
	Address     string          `json:"address"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}
