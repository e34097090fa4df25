// Package rayid tags every request with a unique ray ID for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray ID to and from clients.
const Header = "X-Ray-ID"

// LocalsKey is where the ray ID is stored on the Fiber context.
const LocalsKey = "ray_id"

// New returns a middleware that assigns a ray ID to each request. An
// incoming X-Ray-ID header is kept, so upstream proxies can pre-assign one.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
