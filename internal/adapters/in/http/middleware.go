package http

import (
	"net/http"
	"strconv"
	"strings"

	"orderflow/internal/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// identityContextKey is where the authenticated user identity lands on the
// echo context.
const identityContextKey = "userId"

// MetricsMiddleware counts requests by method, route, and status code.
func MetricsMiddleware(collector *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			collector.RequestsTotal.WithLabelValues(
				c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// IdentityMiddleware resolves the caller identity from an optional bearer
// token. A valid token puts its subject on the context; an invalid token is
// rejected. Requests without a token pass through anonymously, matching the
// storefront where browsing needs no account.
//
// With an empty secret the middleware is a no-op so local setups run without
// auth infrastructure.
func IdentityMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized,
					ErrorResponse{Error: "malformed authorization header"})
			}

			token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized,
					ErrorResponse{Error: "invalid token"})
			}

			if subject, subErr := token.Claims.GetSubject(); subErr == nil && subject != "" {
				c.Set(identityContextKey, subject)
			}

			return next(c)
		}
	}
}

// identityFrom returns the authenticated user identity, or "" for anonymous
// requests.
func identityFrom(c echo.Context) string {
	if userID, ok := c.Get(identityContextKey).(string); ok {
		return userID
	}
	return ""
}
