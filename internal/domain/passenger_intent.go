package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PassengerIntent - заявка пассажира на поездку, ожидающая матча.
// Владелец заявки - PassengerID.
type PassengerIntent struct {
	ID                uuid.UUID `json:"id"`
	PassengerID       uuid.UUID `json:"passenger_id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	DesiredPickupTime time.Time `json:"desired_pickup_time"`
	Seats             int       `json:"seats"`
	MaxPrice          *float64  `json:"max_price,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate проверяет корректность заявки
func (i *PassengerIntent) Validate() error {
	if i.PassengerID == uuid.Nil {
		return ErrInvalidIntentData
	}
	i.Origin = strings.TrimSpace(i.Origin)
	i.Destination = strings.TrimSpace(i.Destination)
	if i.Origin == "" || i.Destination == "" {
		return ErrInvalidIntentData
	}
	if i.Seats < 1 {
		return ErrInvalidIntentData
	}
	if i.MaxPrice != nil && *i.MaxPrice < 0 {
		return ErrInvalidIntentData
	}
	return nil
}
