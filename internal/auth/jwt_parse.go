package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

func ParseJWT(tokenStr string, secret string) (*AuthContext, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	ctx := &AuthContext{}
	if sub, ok := claims["sub"].(float64); ok {
		ctx.UserID = int(sub)
	}
	if username, ok := claims["username"].(string); ok {
		ctx.Username = username
	}
	if identity, ok := claims["identity"].(string); ok {
		ctx.Identity = identity
	}
	return ctx, nil
}
