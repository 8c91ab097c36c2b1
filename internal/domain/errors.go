package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PassengerIntent errors
var (
	ErrPassengerIntentNotFound = errors.New("passenger intent not found")
	ErrInvalidIntentData       = errors.New("invalid passenger intent data")
)

// DriverAvailability errors
var (
	ErrDriverAvailabilityNotFound = errors.New("driver availability not found")
	ErrInvalidAvailabilityData    = errors.New("invalid driver availability data")
	ErrInvalidDateRange           = errors.New("invalid date range")
)

// IntentMatch errors
var (
	ErrMatchNotFound = errors.New("intent match not found")
	// ErrInvalidMatchParties - заявка или доступность, на которые ссылается матч, не существуют
	ErrInvalidMatchParties = errors.New("invalid intent or availability")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)
