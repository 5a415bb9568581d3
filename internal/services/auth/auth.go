// Package auth содержит логику регистрации, входа и проверки токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/events"
	"github.com/magabrotheeeer/sheets-api/internal/lib/jwt"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// EmailExists проверяет, занят ли email.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя или common.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// EventPublisher публикует события жизненного цикла.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// dummyPassword хешируется один раз; его хеш сравнивается при входе
// несуществующего пользователя, чтобы обе ветки отказа стоили одинаково.
const dummyPassword = "dummy-password-for-timing"

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users     UserRepository
	hasher    PasswordHasher
	jwtMaker  jwt.Maker
	publisher EventPublisher
	log       *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, hasher PasswordHasher, jwtMaker jwt.Maker,
	publisher EventPublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtMaker:  jwtMaker,
		publisher: publisher,
		log:       log,
	}
}

// Register создаёт пользователя и выдаёт токен. Запрос должен быть уже провалидирован.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	const op = "services.auth.Register"
	log := s.log.With(sl.Op(op))

	email := normalizeEmail(req.Email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		log.Error("failed to check email", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, common.ErrDuplicateAccount)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}

	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		PasswordHash: hashed,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, fmt.Errorf("%s: %w", op, common.ErrDuplicateAccount)
		}
		log.Error("failed to create user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}
	user.UUID = uid

	token, err := s.issue(&user)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}

	if err := s.publisher.Publish(ctx, events.UserRegistered(uid)); err != nil {
		log.Warn("failed to publish event", sl.Err(err))
	}
	log.Info("user registered", slog.String("uid", uid))

	return &models.Session{Token: token, User: models.ProfileOf(&user)}, nil
}

// Login проверяет учётные данные и выдаёт токен. Отсутствующий пользователь
// и неверный пароль неотличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	const op = "services.auth.Login"
	log := s.log.With(sl.Op(op))

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(req.Password, s.dummy())
			return nil, fmt.Errorf("%s: %w", op, common.ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%s: %w", op, common.ErrInvalidCredentials)
	}

	token, err := s.issue(user)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := models.ProfileOf(user)
	profile.Password = models.PasswordPlaceholder
	return &models.Session{Token: token, User: profile}, nil
}

// ValidateToken проверяет токен и возвращает данные пользователя из него.
// Обращения к базе нет.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.UserClaims, error) {
	const op = "services.auth.ValidateToken"
	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, common.ErrUnauthenticated)
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrInvalidToken, err)
	}
	return &claims.UserClaims, nil
}

func (s *AuthService) issue(u *models.User) (string, error) {
	return s.jwtMaker.GenerateToken(jwt.UserClaims{
		UserUID: u.UUID,
		Name:    u.Name,
		Email:   u.Email,
	})
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Warn("failed to prepare dummy hash", sl.Err(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
