package portal

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/session"
)

const loginRoute = "/login"

// RequireAuth blocks navigation unless a usable credential is present.
// Denied entry redirects to the login view.
func RequireAuth(sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sess.IsLoggedIn(c.Context()) {
			return c.Redirect(loginRoute, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireClinician blocks navigation unless the token marks a
// clinician. Denial is indistinguishable from not being logged in.
func RequireClinician(sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sess.IsClinician(c.Context()) {
			return c.Redirect(loginRoute, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequirePatient blocks navigation unless the token marks a patient.
// Tokens without the admin claim are rejected by both role guards.
func RequirePatient(sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sess.IsPatient(c.Context()) {
			return c.Redirect(loginRoute, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
