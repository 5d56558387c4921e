package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// JWTAuth validates a Bearer token and stores the authenticated identity in
// the request context. Requests without a valid token are rejected before
// any pipeline work is attempted.
func JWTAuth(secretKey string) echo.MiddlewareFunc {
	secret := []byte(secretKey)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header required"})
			}

			// Bearer prefix is case-insensitive per RFC 6750.
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" || tokenParts[1] == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
			}

			token, err := jwt.ParseWithClaims(tokenParts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token expired"})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			}

			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok || !token.Valid || claims.Subject == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token claims"})
			}

			c.Set(identityContextKey, claims.Subject)
			return next(c)
		}
	}
}

// IdentityFromContext returns the authenticated identity set by JWTAuth.
func IdentityFromContext(c echo.Context) string {
	identity, _ := c.Get(identityContextKey).(string)
	return identity
}
