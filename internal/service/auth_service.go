package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/repository"
	"github.com/ignatzorin/consulting-backend/internal/validation"
)

// AuthService отвечает за регистрацию, вход и ротацию refresh токенов.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *TokenManager
}

func NewAuthService(userRepo *repository.UserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Role     string
}

// Register создаёт пользователя. Роль admin через публичную регистрацию
// получить нельзя.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if len(strings.TrimSpace(input.Username)) < 3 {
		return nil, apperror.New(apperror.ErrCodeValidation, "имя пользователя должно быть не короче 3 символов")
	}
	if len(input.Password) < 8 {
		return nil, apperror.New(apperror.ErrCodeValidation, "пароль должен быть не короче 8 символов")
	}

	role, err := valueobject.NewRole(input.Role)
	if err != nil {
		return nil, err
	}
	if role == valueobject.RoleAdmin {
		return nil, apperror.New(apperror.ErrCodeForbidden, "регистрация администраторов недоступна")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// Login проверяет учётные данные и выпускает пару токенов.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return nil, nil, apperror.New(apperror.ErrCodeUnauthorized, "неверный email или пароль")
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, apperror.New(apperror.ErrCodeForbidden, "учётная запись заблокирована")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, apperror.New(apperror.ErrCodeUnauthorized, "неверный email или пароль")
	}

	pair, refreshExp, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токены")
	}

	session := &entity.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    refreshExp,
	}
	if input.UserAgent != "" {
		session.UserAgent = &input.UserAgent
	}
	if input.IPAddress != "" {
		session.IPAddress = &input.IPAddress
	}

	if err := s.userRepo.CreateSession(ctx, session); err != nil {
		return nil, nil, err
	}

	_ = s.userRepo.UpdateLastLoginAt(ctx, user.ID)

	return user, pair, nil
}

// Refresh ротирует пару токенов по действующему refresh токену.
// Старая сессия удаляется, повторное использование токена невозможно.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	session, err := s.userRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || session.UserID != userID {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	if err := s.userRepo.DeleteSession(ctx, refreshToken); err != nil {
		return nil, err
	}

	pair, refreshExp, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токены")
	}

	newSession := &entity.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		UserAgent:    session.UserAgent,
		IPAddress:    session.IPAddress,
		ExpiresAt:    refreshExp,
	}
	if err := s.userRepo.CreateSession(ctx, newSession); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout удаляет сессию по refresh токену.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.userRepo.DeleteSession(ctx, refreshToken)
}

// GetUser возвращает пользователя по идентификатору.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
