package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus - статус предложенного матча
type MatchStatus string

// MatchStatusPending - единственный статус, который выставляет создание матча
const MatchStatusPending MatchStatus = "pending"

// IntentMatch - предложенная пара "заявка пассажира + доступность водителя".
// Score, цена, время и место подачи передаются в БД как есть (nil -> NULL),
// диапазоны значений здесь не проверяются.
type IntentMatch struct {
	ID                   uuid.UUID   `json:"id"`
	PassengerIntentID    uuid.UUID   `json:"passenger_intent_id"`
	DriverAvailabilityID uuid.UUID   `json:"driver_availability_id"`
	MatchScore           *float64    `json:"match_score"`
	AgreedPrice          *float64    `json:"agreed_price"`
	PickupTime           *time.Time  `json:"pickup_time"`
	PickupLocation       *string     `json:"pickup_location"`
	Status               MatchStatus `json:"status"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// NewIntentMatch - данные для вставки матча. PickupTime хранит строку
// из запроса без разбора: ее приводит к timestamptz сама БД.
type NewIntentMatch struct {
	PassengerIntentID    uuid.UUID
	DriverAvailabilityID uuid.UUID
	MatchScore           *float64
	AgreedPrice          *float64
	PickupTime           *string
	PickupLocation       *string
	Status               MatchStatus
}

// MatchParties - владельцы сущностей, на которые ссылается матч
type MatchParties struct {
	PassengerID uuid.UUID
	DriverID    uuid.UUID
}

// Includes проверяет, является ли пользователь пассажиром или водителем матча
func (p MatchParties) Includes(userID uuid.UUID) bool {
	return userID == p.PassengerID || userID == p.DriverID
}
