package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifica la disponibilidad de la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler GET /health: 200 si la base responde, 503 si no.
func HealthHandler(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			if err := db.Ping(c.UserContext()); err != nil {
				c.Locals(LocalError, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable", "service": service, "database": "down",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service, "database": "up"})
	}
}
