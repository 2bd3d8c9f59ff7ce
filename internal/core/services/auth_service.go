package services

import (
	"context"
	"errors"
	"log"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/config"
	"montsion-scolarite/internal/core/domain"
	"montsion-scolarite/internal/pkg/jwt"
)

// AuthService handles authentication and account creation over the user
// directory. Every call reads the directory fresh from the store, so a
// login succeeds exactly when the username/password pair is present in the
// users file at call time.
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateProfileInput represents account-creation input
type CreateProfileInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	Identity     domain.Identity
	SessionToken string
}

// Login authenticates a user and issues a session token.
// A missing user and a wrong password both surface as
// domain.ErrInvalidCredentials so the response cannot be used to probe
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Stored passwords are install-time plaintext defaults, compared verbatim.
	if user.Password != input.Password {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateSessionToken(
		user.Username,
		string(user.Role),
		s.cfg.Session.Secret,
		s.cfg.Session.TokenMins,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		Identity:     domain.Identity{Username: user.Username, Role: user.Role},
		SessionToken: token,
	}, nil
}

// CreateProfile creates a new account. The role is stored as supplied;
// there is no password-strength or role validation.
func (s *AuthService) CreateProfile(ctx context.Context, input *CreateProfileInput) error {
	user := &domain.User{
		Username: input.Username,
		Password: input.Password,
		Role:     domain.Role(input.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Profile created: %s (role: %s)", user.Username, user.Role)
	return nil
}
