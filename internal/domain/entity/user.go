package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
)

// User — учётная запись участника площадки.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Role         valueobject.Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Actor() valueobject.Actor {
	return valueobject.Actor{ID: u.ID, Role: u.Role}
}

// Session — выданный refresh токен и его метаданные.
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RefreshToken string
	UserAgent    *string
	IPAddress    *string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}
