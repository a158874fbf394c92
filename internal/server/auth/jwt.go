// Package auth issues and validates the bearer tokens that stand in for a
// browser session on the HTTP API.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/models"
)

// Claims carries the registered claims plus the signed-in identity.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func GenerateToken(email string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
		Role:  role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IdentityFromToken returns the email and role baked into a token, or
// common.ErrorInvalidToken when the token fails validation.
func IdentityFromToken(tokenString string, secretKey []byte) (string, models.Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", "", common.ErrorInvalidToken
	}

	if !token.Valid {
		return "", "", common.ErrorInvalidToken
	}

	return claims.Email, claims.Role, nil
}
