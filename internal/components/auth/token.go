package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/config"
)

const tokenType = "Bearer"

type (
	// Claims carried by every issued token.
	Claims struct {
		UserID string `json:"uid"`
		jwt.RegisteredClaims
	}

	// TokenManager mints and validates signed access tokens. Tokens are
	// derived, never stored: a token is valid while the signature checks
	// out and the expiry has not passed.
	TokenManager struct {
		secret       []byte
		ttl          time.Duration
		rememberTTL  time.Duration
		refreshGrace time.Duration
		now          func() time.Time
	}
)

func NewTokenManager(cfg *config.Config) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be configured")
	}
	return &TokenManager{
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		rememberTTL:  cfg.TokenTTLRemember,
		refreshGrace: cfg.RefreshGrace,
		now:          time.Now,
	}, nil
}

// Issue mints a token for the identity. Remember selects the extended
// lifetime.
func (m *TokenManager) Issue(userID uuid.UUID, remember bool) (*Token, error) {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	now := m.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken:        signed,
		TokenType:          tokenType,
		ExpiresIn:          int64(ttl.Seconds()),
		ExpiredAt:          expiresAt.UTC().Format(time.RFC3339),
		ExpiredAtTimestamp: expiresAt.UnixMilli(),
	}, nil
}

// Parse validates signature and expiry and returns the claims.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, apperr.ErrTokenInvalid
	}

	return claims, nil
}

// Refresh validates the signature of an existing token, tolerates expiry
// within the grace window, and issues a replacement with a fresh lifetime.
func (m *TokenManager) Refresh(token string) (*Token, error) {
	claims := &Claims{}

	// Signature is still verified; only claim validation is skipped so the
	// grace window can be applied by hand.
	_, err := jwt.ParseWithClaims(token, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, apperr.ErrTokenInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, apperr.ErrTokenInvalid
	}
	if m.now().After(claims.ExpiresAt.Add(m.refreshGrace)) {
		return nil, apperr.ErrTokenExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperr.ErrTokenInvalid
	}

	return m.Issue(userID, false)
}

// UserIDValue extracts the identity the claims were issued for.
func (c *Claims) UserIDValue() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, apperr.ErrTokenInvalid
	}
	return id, nil
}

func (m *TokenManager) keyFunc(_ *jwt.Token) (any, error) {
	return m.secret, nil
}
