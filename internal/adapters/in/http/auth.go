package http

import (
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	callerIDKey     = "caller_id"
	protectedPrefix = "/api/"
)

// JWTConfig configures bearer authentication of the /api routes.
// Tokens are HS256 signed and carry the caller id as subject.
type JWTConfig struct {
	Secret string
	Issuer string
}

// BearerAuth authenticates requests to routes under /api/. Webhooks, health
// and metrics stay public.
func BearerAuth(config JWTConfig) echo.MiddlewareFunc {
	secret := []byte(config.Secret)
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if config.Issuer != "" {
		options = append(options, jwt.WithIssuer(config.Issuer))
	}
	parser := jwt.NewParser(options...)

	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Path(), protectedPrefix) {
				return next(c)
			}

			token, found := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				return unauthorized(c, "Missing bearer token")
			}

			claims := &jwt.RegisteredClaims{}
			if _, err := parser.ParseWithClaims(strings.TrimSpace(token), claims, keyFunc); err != nil {
				return unauthorized(c, "Invalid bearer token")
			}

			callerID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return unauthorized(c, "Invalid token subject")
			}

			c.Set(callerIDKey, callerID)
			return next(c)
		}
	}
}

func callerFrom(c echo.Context) (kernel.UUID, error) {
	callerID, ok := c.Get(callerIDKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errs.ErrUnauthorized
	}
	return callerID, nil
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
