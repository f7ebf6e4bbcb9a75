package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PresenterRole is the only role issued; it grants control of the ceremony.
const PresenterRole = "presenter"

type PresenterClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateJWT(username, secret string, expireHours int) (string, error) {
	now := time.Now()
	claims := PresenterClaims{
		Role: PresenterRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateJWT(tokenString, secret string) (*PresenterClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PresenterClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*PresenterClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Role != PresenterRole {
		return nil, fmt.Errorf("token is not a presenter token")
	}
	return claims, nil
}
