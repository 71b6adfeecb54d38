package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/dto"
	"github.com/ignatzorin/consulting-backend/internal/http/middleware"
)

var (
	ErrNoActor     = errors.New("пользователь не найден в контексте")
	ErrInvalidUUID = errors.New("неверный формат UUID")
)

// CurrentActor собирает принципала запроса из контекста аутентификации.
func CurrentActor(c *gin.Context) (valueobject.Actor, error) {
	rawID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return valueobject.Actor{}, ErrNoActor
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return valueobject.Actor{}, ErrNoActor
	}

	rawRole, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return valueobject.Actor{}, ErrNoActor
	}
	roleStr, ok := rawRole.(string)
	if !ok {
		return valueobject.Actor{}, ErrNoActor
	}

	role, err := valueobject.NewRole(roleStr)
	if err != nil {
		return valueobject.Actor{}, ErrNoActor
	}

	return valueobject.Actor{ID: userID, Role: role}, nil
}

// ParseUUIDParam разбирает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// BindAndValidate привязывает JSON тело запроса.
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func RespondUnauthorized(c *gin.Context) {
	RespondError(c, http.StatusUnauthorized, "требуется авторизация")
}

func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// ParseIntQuery читает целочисленный query-параметр со значением по умолчанию.
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetPagination извлекает limit и offset из query-параметров.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = ParseIntQuery(c, "limit", 20)
	offset = ParseIntQuery(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return
}
