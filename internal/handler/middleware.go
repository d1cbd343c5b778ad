package handler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	slowRequest    = 100 * time.Millisecond
	sampleInterval = 10 * time.Second
)

// RequestLogger logs every failed, non-200 or slow request and samples the
// rest at most once per sampleInterval. Each request gets an X-Request-ID.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	var (
		lastLogTime atomic.Value
		logMutex    sync.Mutex
	)
	lastLogTime.Store(time.Now())

	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Set(fiber.HeaderXRequestID, requestID)

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		if err != nil || latency > slowRequest || c.Response().StatusCode() != fiber.StatusOK {
			logger.Info("request",
				zap.String("request_id", requestID),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", latency),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return err
		}

		last := lastLogTime.Load().(time.Time)
		if time.Since(last) >= sampleInterval {
			logMutex.Lock()
			// Another request may have logged while we waited.
			if last = lastLogTime.Load().(time.Time); time.Since(last) >= sampleInterval {
				logger.Info("sampled_request",
					zap.String("request_id", requestID),
					zap.Int("status", c.Response().StatusCode()),
					zap.Duration("latency", latency),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
				)
				lastLogTime.Store(time.Now())
			}
			logMutex.Unlock()
		}

		return err
	}
}
