package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pitchsideapp/pitchside/internal/services/identity/storage"
)

// Token sentinel errors.
var (
	ErrTokenInvalid = errors.New("session token is invalid")
	ErrTokenExpired = errors.New("session token is expired")
)

// signerEnv holds raw env values before post-parse validation.
type signerEnv struct {
	Secret   string        `env:"PITCHSIDE_SESSION_SECRET"`
	Issuer   string        `env:"PITCHSIDE_SESSION_ISSUER" envDefault:"pitchside"`
	Audience string        `env:"PITCHSIDE_SESSION_AUDIENCE" envDefault:"pitchside-api"`
	TTL      time.Duration `env:"PITCHSIDE_SESSION_TTL" envDefault:"24h"`
}

// SignerConfig defines how session tokens are minted and verified.
type SignerConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
	Now      func() time.Time
}

// LoadSignerConfigFromEnv reads session token configuration.
func LoadSignerConfigFromEnv(now func() time.Time) (SignerConfig, error) {
	var raw signerEnv
	if err := env.Parse(&raw); err != nil {
		return SignerConfig{}, fmt.Errorf("parse session env: %w", err)
	}
	secret := strings.TrimSpace(raw.Secret)
	if secret == "" {
		return SignerConfig{}, fmt.Errorf("PITCHSIDE_SESSION_SECRET is required")
	}
	if raw.TTL <= 0 {
		return SignerConfig{}, fmt.Errorf("PITCHSIDE_SESSION_TTL must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return SignerConfig{
		Secret:   []byte(secret),
		Issuer:   strings.TrimSpace(raw.Issuer),
		Audience: strings.TrimSpace(raw.Audience),
		TTL:      raw.TTL,
		Now:      now,
	}, nil
}

// SessionClaims captures validated session token claims.
type SessionClaims struct {
	UserID    string
	Role      storage.Role
	ExpiresAt time.Time
}

// sessionClaims is the internal claims type used for JWT parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Signer mints and verifies HS256 session tokens.
type Signer struct {
	cfg SignerConfig
}

// NewSigner validates the config and returns a session token signer.
func NewSigner(cfg SignerConfig) (*Signer, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, fmt.Errorf("session issuer and audience are required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Signer{cfg: cfg}, nil
}

// Mint issues a session token for the user.
func (s *Signer) Mint(userID string, role storage.Role) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if !role.Known() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	now := s.cfg.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Role: string(role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify parses a session token and validates issuer, audience, and expiry.
func (s *Signer) Verify(token string) (SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SessionClaims{}, ErrTokenInvalid
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return SessionClaims{}, ErrTokenInvalid
	}

	if parsed.Issuer != s.cfg.Issuer {
		return SessionClaims{}, ErrTokenInvalid
	}
	if !audienceContains(parsed.Audience, s.cfg.Audience) {
		return SessionClaims{}, ErrTokenInvalid
	}
	if parsed.Subject == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	role := storage.Role(parsed.Role)
	if !role.Known() {
		return SessionClaims{}, ErrTokenInvalid
	}
	if parsed.ExpiresAt == nil {
		return SessionClaims{}, ErrTokenInvalid
	}
	now := s.cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return SessionClaims{}, ErrTokenExpired
	}

	return SessionClaims{
		UserID:    parsed.Subject,
		Role:      role,
		ExpiresAt: exp,
	}, nil
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}
