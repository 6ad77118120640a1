package middleware

import (
	"encoding/json"
	"time"

	"auto-repair-site/logger"
	"auto-repair-site/types"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger records every API request and response through the async
// logger so the admin dashboard has an audit trail.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestBody := string(c.Body())
		err := c.Next()

		reqHeaders, _ := json.Marshal(c.GetReqHeaders())
		respHeaders, _ := json.Marshal(c.GetRespHeaders())

		asyncLogger.Log(types.LogEntry{
			Method:          c.Method(),
			URL:             c.OriginalURL(),
			ClientIP:        c.IP(),
			RequestBody:     requestBody,
			ResponseBody:    string(c.Response().Body()),
			RequestHeaders:  string(reqHeaders),
			ResponseHeaders: string(respHeaders),
			StatusCode:      c.Response().StatusCode(),
			CreatedAt:       time.Now(),
		})

		return err
	}
}
