// Package auth resolves the authenticated principal for incoming requests.
// Token issuance belongs to an external identity service; only HS256
// verification happens here.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/domain"
)

const principalKey = "principal"

// Middleware validates the Bearer token and stores the principal in the
// echo context. The subject claim is the user id; the optional role claim
// defaults to "user".
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token has no subject"})
			}

			role := "user"
			if r, ok := claims["role"].(string); ok && r != "" {
				role = r
			}

			c.Set(principalKey, domain.Principal{UserID: sub, Role: role})
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal attached by Middleware. The zero
// principal means the route was not protected.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, _ := c.Get(principalKey).(domain.Principal)
	return p
}
