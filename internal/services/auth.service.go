package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyCredentials  = errors.New("username and password are required")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
)

type CourierRepository interface {
	Create(ctx context.Context, c *model.Courier) (*model.Courier, error)
	GetByUsername(ctx context.Context, username string) (*model.Courier, error)
}

type TokenIssuer interface {
	Issue(courierID int64, username string) (string, error)
}

type AuthService struct {
	couriers CourierRepository
	tokens   TokenIssuer
}

func NewAuthService(couriers CourierRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		couriers: couriers,
		tokens:   tokens,
	}
}

// Register creates a courier account. The plaintext password never leaves
// this function, only the bcrypt hash is stored.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.Courier, error) {
	if err := req.Validate(); err != nil {
		return nil, ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	courier, err := s.couriers.Create(ctx, &model.Courier{
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return courier, nil
}

// Login verifies the credentials and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", ErrEmptyCredentials
	}

	courier, err := s.couriers.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrCourierNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(courier.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrWrongPassword
	}

	tok, err := s.tokens.Issue(courier.ID, courier.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return tok, nil
}
