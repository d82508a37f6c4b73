package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates access tokens issued by the auth service.
// This service never issues tokens itself.
type Verifier struct {
	accessSecret string
	issuer       string
}

// NewVerifier creates a new access token verifier
func NewVerifier(accessSecret, issuer string) *Verifier {
	return &Verifier{
		accessSecret: accessSecret,
		issuer:       issuer,
	}
}

// ValidateAccessToken validates and parses access token
func (v *Verifier) ValidateAccessToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.accessSecret), nil
	}, opts...)

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
