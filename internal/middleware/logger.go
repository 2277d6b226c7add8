package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pagetrail/backend/internal/privacy"
	"go.uber.org/zap"
)

// LoggerMiddleware logs one line per request. Only the masked form of the
// client address goes to the server logs; raw addresses stay out of them
// even for consented clients.
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.Info("request",
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", privacy.MaskAddress(c.IP())),
		)

		return err
	}
}
