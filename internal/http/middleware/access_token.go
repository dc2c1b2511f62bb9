package middleware

import (
	"crypto/subtle"
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// HeaderAccessToken is the header Asaas sends the shared secret in.
const HeaderAccessToken = "asaas-access-token"

const unauthorizedBody = "Acesso não autorizado"

// AccessTokenMiddleware authenticates inbound webhooks against the
// configured shared secret. An empty configured secret rejects everything
// (fail closed).
func AccessTokenMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderAccessToken)
			if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				log.Warnf("webhook rejected: invalid access token from %s", c.RealIP())
				return c.String(http.StatusUnauthorized, unauthorizedBody)
			}
			return next(c)
		}
	}
}
