package middleware

import "github.com/gofiber/fiber/v2"

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "POST, OPTIONS, GET"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORS stamps the fixed cross-origin policy on every response and answers
// any OPTIONS request with an empty 200.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		SetCORSHeaders(c)

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}
		return c.Next()
	}
}

// SetCORSHeaders writes the fixed policy onto the response. Error responses
// rendered outside the middleware chain (body-limit rejections) use it directly.
func SetCORSHeaders(c *fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
}
