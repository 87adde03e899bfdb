package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yerk0w/EduLifeFor-merge/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Token types
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims token claims shared by every service.
// Subject carries the username so that tokens stay readable by older clients.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // "access" | "refresh"
	// SessionID ties a refresh token to every access token minted from it
	SessionID string `json:"sid,omitempty"`
	jwtv5.RegisteredClaims
}

// Manager issues and verifies HS256 tokens
type Manager struct {
	secret          []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager creates a Manager
func NewManager(cfg *config.AuthConfig) *Manager {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "edulife"
	}
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		issuer:          issuer,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// AccessTokenTTL lifetime of access tokens
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

// RefreshTokenTTL lifetime of refresh tokens, and so of a session
func (m *Manager) RefreshTokenTTL() time.Duration {
	return m.refreshTokenTTL
}

// GenerateAccessToken issues an access token in a new session
func (m *Manager) GenerateAccessToken(userID uint, username, role string) (string, error) {
	return m.generate(userID, username, role, TokenTypeAccess, uuid.NewString(), m.accessTokenTTL)
}

// GenerateRefreshToken issues a refresh token in a new session
func (m *Manager) GenerateRefreshToken(userID uint, username, role string) (string, error) {
	return m.generate(userID, username, role, TokenTypeRefresh, uuid.NewString(), m.refreshTokenTTL)
}

// GenerateTokenPair issues an access and a refresh token sharing one session
func (m *Manager) GenerateTokenPair(userID uint, username, role string) (access, refresh string, err error) {
	sid := uuid.NewString()
	access, err = m.generate(userID, username, role, TokenTypeAccess, sid, m.accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.generate(userID, username, role, TokenTypeRefresh, sid, m.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateSessionAccessToken issues an access token inside an existing session
func (m *Manager) GenerateSessionAccessToken(sid string, userID uint, username, role string) (string, error) {
	if sid == "" {
		sid = uuid.NewString()
	}
	return m.generate(userID, username, role, TokenTypeAccess, sid, m.accessTokenTTL)
}

func (m *Manager) generate(userID uint, username, role, tokenType, sid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		SessionID: sid,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    m.issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies signature and expiry
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(m.issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// RemainingTTL time left before the token expires; zero when already expired
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}
