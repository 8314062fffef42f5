package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's Api type so they can be
// collected into a single fx group and registered in one pass.
type Route interface {
	Setup(app *fiber.App)
}
