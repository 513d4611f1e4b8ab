package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "ACCESS"
	RefreshToken TokenType = "REFRESH"
)

// ErrInvalidToken covers every decoding failure: bad signature, expiry, malformed input or wrong claims.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates HMAC-signed access and refresh tokens.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Claims struct {
	Type   TokenType `json:"type"`
	UserID string    `json:"user_id"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenManager{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// CreateToken signs a token of the given kind for userID and returns it with its expiry.
func (m *TokenManager) CreateToken(kind TokenType, userID string) (string, time.Time, error) {
	var ttl time.Duration
	switch kind {
	case AccessToken:
		ttl = m.accessTTL
	case RefreshToken:
		ttl = m.refreshTTL
	default:
		return "", time.Time{}, fmt.Errorf("unknown token type %q", kind)
	}

	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		Type:   kind,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	return s, exp, err
}

// DecodeToken verifies the signature and expiry of tokenStr and returns its claims.
func (m *TokenManager) DecodeToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != AccessToken && claims.Type != RefreshToken {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsTokenValid reports whether tokenStr decodes and is of the expected kind.
func (m *TokenManager) IsTokenValid(tokenStr string, kind TokenType) bool {
	claims, err := m.DecodeToken(tokenStr)
	return err == nil && claims.Type == kind
}

func (m *TokenManager) GetTokenType(tokenStr string) (TokenType, error) {
	claims, err := m.DecodeToken(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Type, nil
}
