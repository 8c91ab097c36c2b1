package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole представляет роль пользователя в системе
type UserRole string

const (
	RolePassenger UserRole = "passenger" // Пассажир, публикует намерения поездки
	RoleDriver    UserRole = "driver"    // Водитель, публикует доступность
	RoleAdmin     UserRole = "admin"     // Администратор системы
)

// User - учетная запись пассажира или водителя
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Никогда не возвращаем в JSON
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// IsDriver проверяет, может ли пользователь публиковать доступность
func (u *User) IsDriver() bool {
	return u.Role == RoleDriver || u.Role == RoleAdmin
}

// Validate проверяет корректность данных пользователя
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.FullName == "" {
		return ErrInvalidUserData
	}
	switch u.Role {
	case RolePassenger, RoleDriver, RoleAdmin:
	default:
		return ErrInvalidRole
	}
	return nil
}
