package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DriverAvailability - предложение водителя выполнить поездку.
// Владелец предложения - DriverID.
type DriverAvailability struct {
	ID             uuid.UUID `json:"id"`
	DriverID       uuid.UUID `json:"driver_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	AvailableFrom  time.Time `json:"available_from"`
	AvailableUntil time.Time `json:"available_until"`
	Seats          int       `json:"seats"`
	PricePerSeat   *float64  `json:"price_per_seat,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate проверяет корректность предложения
func (a *DriverAvailability) Validate() error {
	if a.DriverID == uuid.Nil {
		return ErrInvalidAvailabilityData
	}
	a.Origin = strings.TrimSpace(a.Origin)
	a.Destination = strings.TrimSpace(a.Destination)
	if a.Origin == "" || a.Destination == "" {
		return ErrInvalidAvailabilityData
	}
	if a.Seats < 1 {
		return ErrInvalidAvailabilityData
	}
	if !a.AvailableUntil.After(a.AvailableFrom) {
		return ErrInvalidDateRange
	}
	if a.PricePerSeat != nil && *a.PricePerSeat < 0 {
		return ErrInvalidAvailabilityData
	}
	return nil
}
