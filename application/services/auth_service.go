package services

import (
	"context"

	"merculy-backend/application/ports"
	"merculy-backend/domain/user"
	"merculy-backend/pkg/auth"
	pkgerrors "merculy-backend/pkg/errors"

	"go.uber.org/zap"
)

// AuthResult is a successful authentication: the account plus a token
type AuthResult struct {
	User      *user.User
	Token     string
	ExpiresIn int64
}

// AuthService handles signup, login and oauth sign-in
type AuthService struct {
	users     ports.UserRepository
	generator *auth.JWTGenerator
	logger    *zap.Logger
}

// NewAuthService creates an auth service
func NewAuthService(users ports.UserRepository, generator *auth.JWTGenerator, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		generator: generator,
		logger:    logger,
	}
}

// Signup registers a password-based account
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.NewConflictError("an account with this email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to hash password").WithCause(err)
	}

	u, err := user.NewUser(name, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", u.ID()),
	)

	return s.issueToken(u)
}

// Login authenticates a password-based account
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash() == "" {
		return nil, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	if err := auth.CheckPassword(u.PasswordHash(), password); err != nil {
		return nil, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	return s.issueToken(u)
}

// OAuthLogin signs in with an already verified external identity,
// creating the account on first sight. Token verification against the
// provider happens upstream.
func (s *AuthService) OAuthLogin(ctx context.Context, provider, subject, email, name string) (*AuthResult, error) {
	u, err := s.users.GetByOAuth(ctx, provider, subject)
	if err != nil {
		return nil, err
	}

	if u == nil {
		// An existing password account with the same email is linked
		// rather than duplicated
		u, err = s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	if u == nil {
		u, err = user.NewOAuthUser(name, email, provider, subject)
		if err != nil {
			return nil, err
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		s.logger.Info("OAuth user registered",
			zap.String("user_id", u.ID()),
			zap.String("provider", provider),
		)
	}

	return s.issueToken(u)
}

func (s *AuthService) issueToken(u *user.User) (*AuthResult, error) {
	token, err := s.generator.GenerateToken(u.ID(), u.Email())
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to generate token").WithCause(err)
	}

	return &AuthResult{
		User:      u,
		Token:     token,
		ExpiresIn: s.generator.ExpirySeconds(),
	}, nil
}
