package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/auth"
)

// JWTManager issues HS256 session tokens. It satisfies auth.SessionHandler;
// whether a token is still the live one is decided by the caller against the
// stored user session.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

func NewJWTManager(secret string, ttl time.Duration, issuer string) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl, Issuer: issuer}
}

type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateSession(p auth.SessionPayload) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: p.ID,
		Email:  p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two sessions issued in the same second distinct
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// VerifySession returns the embedded payload, or an error for a malformed,
// forged or expired token.
func (m *JWTManager) VerifySession(token string) (*auth.SessionPayload, error) {
	claims, err := parseToken(token, m.Secret)
	if err != nil {
		return nil, err
	}
	return &auth.SessionPayload{ID: claims.UserID, Email: claims.Email}, nil
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

var _ auth.SessionHandler = (*JWTManager)(nil)
