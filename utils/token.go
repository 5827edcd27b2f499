package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const serviceIssuer = "student-performance-dashboard"

// ServiceClaims identifies the dashboard (and the action it performs) to the
// analytics backend.
type ServiceClaims struct {
	Endpoint string `json:"endpoint"`
	jwt.RegisteredClaims
}

// GenerateServiceToken membuat token JWT berumur pendek untuk satu panggilan ke backend
func GenerateServiceToken(secret, endpoint string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("service token secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	now := time.Now()
	claims := &ServiceClaims{
		Endpoint: endpoint,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    serviceIssuer,
			Subject:   "dashboard",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateServiceToken is the receiving side of GenerateServiceToken, for
// backends that import this package to check the dashboard's calls. The
// dashboard itself only signs.
func ValidateServiceToken(secret, tokenString string) (*ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&ServiceClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(serviceIssuer),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid service token")
	}

	return claims, nil
}
