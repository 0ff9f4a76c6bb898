package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request id in responses, and in requests when a proxy
// already assigned one.
const Header = "X-Ray-ID"

// LocalKey is the fiber.Ctx locals key read by logger.WithRayID.
const LocalKey = "ray_id"

// New returns a middleware that tags every request with a ray id.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
