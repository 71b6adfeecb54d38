package valueobject

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleConsultant Role = "consultant"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleConsultant, RoleAdmin:
		return true
	}
	return false
}

func NewRole(role string) (Role, error) {
	r := Role(role)
	if !r.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная роль пользователя")
	}
	return r, nil
}

// Actor — действующий принципал запроса. Роль уже проверена на уровне
// аутентификации, бизнес-слой ей доверяет. Передаётся явным параметром
// в каждую операцию жизненного цикла.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) Is(userID uuid.UUID) bool {
	return a.ID == userID
}
