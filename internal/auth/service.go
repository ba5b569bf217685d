// Package auth implements registration, login and bearer-token authentication.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"dashboard/internal/models"
	"dashboard/internal/storage/sqlstore"
)

var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	errEmptyToken = errors.New("authorization token is required")
)

// dummyHash is compared against when the username is unknown so that a miss costs
// the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dashboard-login-timing-pad"), bcrypt.DefaultCost)

// UserStore is the credential storage used by Service.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Service provides username/password authentication.
type Service struct {
	users  UserStore
	tokens *TokenService
	cost   int
	logger *slog.Logger
}

// NewService creates a new auth service.
func NewService(users UserStore, tokens *TokenService, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, tokens: tokens, cost: bcrypt.DefaultCost, logger: logger}
}

// RegisterRequest contains sign-up parameters.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks that every field is present.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&r.Role, validation.Required),
	)
}

// Token is the login response payload.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account. A taken username fails with ErrDuplicateUser.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if errors.Is(err, sqlstore.ErrDuplicate) {
		return models.User{}, ErrDuplicateUser
	}
	if err != nil {
		return models.User{}, err
	}

	s.logger.Info("user registered", slog.Int64("id", user.ID), slog.String("role", user.Role))
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, sqlstore.ErrNotFound) {
		return Token{}, err
	}

	hash := dummyHash
	if err == nil {
		hash = []byte(user.PasswordHash)
	}
	if cmpErr := bcrypt.CompareHashAndPassword(hash, []byte(password)); cmpErr != nil || err != nil {
		return Token{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, raw string) (models.User, error) {
	if strings.TrimSpace(raw) == "" {
		return models.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, errEmptyToken)
	}
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users.GetUserByUsername(ctx, claims.Subject)
	if errors.Is(err, sqlstore.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w: user not found", ErrUnauthorized)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
