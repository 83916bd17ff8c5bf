package reqid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalsKey is where the request ID is stored on the request context.
const LocalsKey = "request_id"

// HeaderName is the response header echoing the request ID.
const HeaderName = "X-Request-ID"

// New returns a middleware that assigns every request a unique ID. An ID
// supplied by the client in X-Request-ID is kept so callers can correlate.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
