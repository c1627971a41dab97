package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	store     *FileStore
	jwtSecret []byte
	logger    *slog.Logger
}

func NewService(store *FileStore, jwtSecret []byte, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, jwtSecret: jwtSecret, logger: logger}
}

type AuthResult struct {
	User  User
	Token string
}

func (s *Service) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, apperr.ConflictErr("User already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, apperr.Wrap(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, apperr.Wrap(err)
	}

	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  string(hash),
		Role:      "customer",
		CreatedAt: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return AuthResult{}, apperr.Wrap(err)
	}

	token, err := s.token(u)
	if err != nil {
		return AuthResult{}, apperr.Wrap(err)
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "email", u.Email)
	return AuthResult{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, apperr.UnauthorizedErr("Invalid credentials")
		}
		return AuthResult{}, apperr.Wrap(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return AuthResult{}, apperr.UnauthorizedErr("Invalid credentials")
	}

	updated, err := s.store.UpdateLastLogin(ctx, u.ID)
	if err != nil {
		return AuthResult{}, apperr.Wrap(err)
	}

	token, err := s.token(updated)
	if err != nil {
		return AuthResult{}, apperr.Wrap(err)
	}
	return AuthResult{User: updated, Token: token}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFoundErr("User not found")
		}
		return User{}, apperr.Wrap(err)
	}
	return u, nil
}

// All returns every user without password hashes (password-reset support path).
func (s *Service) All(ctx context.Context) ([]User, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	out := make([]User, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *Service) token(u User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
