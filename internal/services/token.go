package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are valid for a fixed 7-day window; there is no refresh or
// revocation mechanism.
const TokenTTL = 7 * 24 * time.Hour

type TokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret string
}

func NewTokenService(secret string) *TokenService {
	if secret == "" {
		panic("token secret cannot be empty")
	}
	return &TokenService{secret: secret}
}

func (s *TokenService) Issue(name, email string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify returns the decoded claims for a well-formed, untampered,
// unexpired token. Every failure mode collapses into ErrInvalidToken so
// callers cannot probe which check rejected the token.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
