package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quytt2702/authapi/internal/components/user"
	"github.com/quytt2702/authapi/internal/shared/apperr"
)

// dummyHash keeps the bcrypt cost of a lookup miss indistinguishable from a
// hash mismatch, so login timing does not reveal whether the email exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type (
	servicer interface {
		Login(ctx context.Context, req LoginRequest) (*Token, error)
		Refresh(ctx context.Context, token string) (*Token, error)
		Logout(ctx context.Context, token string) error
		Me(ctx context.Context, userID uuid.UUID) (*user.User, error)
		ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	}

	service struct {
		users  user.Repository
		tokens *TokenManager
		deny   *Denylist
		logger zerolog.Logger
	}
)

func NewService(users user.Repository, tokens *TokenManager, deny *Denylist, logger zerolog.Logger) servicer {
	return &service{
		users:  users,
		tokens: tokens,
		deny:   deny,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Login verifies credentials and mints a token. Lookup miss and hash mismatch
// collapse into the same failure.
func (s *service) Login(ctx context.Context, req LoginRequest) (*Token, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		// Burn the same hashing work as the mismatch path
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID, req.Remember)
}

// Refresh exchanges a still-refreshable token for a fresh one. Revoked
// tokens cannot be refreshed.
func (s *service) Refresh(ctx context.Context, token string) (*Token, error) {
	revoked, err := s.deny.IsRevoked(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Denylist check failed, continuing without it")
	}
	if revoked {
		return nil, apperr.ErrTokenInvalid
	}

	return s.tokens.Refresh(token)
}

// Logout revokes the presented token for its remaining lifetime.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := s.deny.Revoke(ctx, token, remaining); err != nil {
		return err
	}

	s.logger.Debug().Str("user_id", claims.UserID).Msg("Token revoked")
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ChangePassword re-verifies the current password, then persists the new
// hash in one atomic write.
func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperr.New(apperr.CodePasswordMismatch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Debug().Str("user_id", userID.String()).Msg("Password changed")
	return nil
}
