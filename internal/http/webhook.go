package http

import (
	"context"
	"net/http"

	"conversion-bridge/internal/model"
	"conversion-bridge/internal/relay"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const receivedBody = "Evento recebido."

// webhookHandler acknowledges every authenticated notification with 200 and
// hands it to the relay in a detached goroutine, so the payments provider
// never waits on (or learns about) the downstream delivery.
func webhookHandler(relaySvc *relay.Relay) echo.HandlerFunc {
	return func(c echo.Context) error {
		var n model.Notification
		if err := c.Bind(&n); err != nil {
			// a broken body is the sender's problem, not ours: ack and move on
			log.Errorf("webhook body unreadable: %v", err)
			return c.String(http.StatusOK, receivedBody)
		}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("relay panic: %v", r)
				}
			}()
			// the request context dies with the response; use a fresh one
			relaySvc.Process(context.Background(), n)
		}()

		return c.String(http.StatusOK, receivedBody)
	}
}
