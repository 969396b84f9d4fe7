// Package auth implements the stateless credential primitives of the
// server: HS256 bearer tokens carrying an account ID, and slow password
// hashing for account and share-link passwords.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vaultbox/vaultbox/internal/common"
)

// Claims includes the registered claims plus the owning account ID.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

// GenerateToken mints a signed HS256 bearer token for the given account.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken validates a bearer token and extracts the account
// ID. Expired, malformed, or badly signed tokens all return an error; the
// caller treats any failure uniformly as unauthorized.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
