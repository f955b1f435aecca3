package rest

import (
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt"
)

type TokenClaims struct {
	Email string `json:"sub"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}

// createToken issues an access token for the administrator.
func (api *API) createToken(email string) (string, time.Time, error) {
	expTime, err := time.ParseDuration(api.Config.JwtExpires)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(api.Config.JwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (api *API) verifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(api.Config.JwtSecret), nil
	})

	if ve, ok := err.(*jwt.ValidationError); ok {
		if ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("token expired")
		}
	}

	if err != nil || !token.Valid {
		log.Println("error verifying token", err)
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	role, _ := claims["role"].(string)
	if role != "admin" {
		return nil, fmt.Errorf("invalid token role")
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("invalid subject")
	}

	exp, _ := claims["exp"].(float64)

	return &TokenClaims{
		Email: email,
		Role:  role,
		Exp:   int64(exp),
	}, nil
}
