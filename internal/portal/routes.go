package portal

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Session   *session.Session
	Login     *LoginHandler
	Clinician *ClinicianHandler
	Patient   *PatientHandler
	Status    *StatusHandler
	Health    *HealthHandler
}

// RegisterRoutes wires the portal route surface: a public login route,
// a clinician subtree, a patient subtree and a catch-all redirect.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/login", cfg.Login.Show)
	app.Post("/login", cfg.Login.Submit)
	app.Post("/logout", cfg.Login.Logout)

	app.Get("/status", cfg.Status.Status)
	app.Post("/status/reset", cfg.Status.Reset)
	app.Delete("/status/notifications/:id", cfg.Status.Dismiss)

	// Guard order matters: RequireAuth denies first, so the role guard
	// is never evaluated for an anonymous caller.
	gp := app.Group("/gp", RequireAuth(cfg.Session), RequireClinician(cfg.Session))
	gp.Get("/patients", cfg.Clinician.ListPatients)
	gp.Get("/patients/:id", cfg.Clinician.GetPatient)
	gp.Post("/patients/:id/appointments", cfg.Clinician.AddAppointment)
	gp.Put("/patients/:id/appointments/:appointmentId", cfg.Clinician.UpdateAppointment)
	gp.Delete("/patients/:id/appointments/:appointmentId", cfg.Clinician.DeleteAppointment)

	patientArea := app.Group("/portal", RequireAuth(cfg.Session), RequirePatient(cfg.Session))
	patientArea.Get("/", cfg.Patient.Overview)
	patientArea.Get("/prescriptions", cfg.Patient.Prescriptions)
	patientArea.Get("/careplans", cfg.Patient.CarePlans)

	// Default route: land on the role's home, or the login view.
	app.Get("/", func(c *fiber.Ctx) error {
		switch {
		case cfg.Session.IsClinician(c.Context()):
			return c.Redirect("/gp/patients", fiber.StatusSeeOther)
		case cfg.Session.IsPatient(c.Context()):
			return c.Redirect("/portal", fiber.StatusSeeOther)
		default:
			return c.Redirect(loginRoute, fiber.StatusSeeOther)
		}
	})

	// Unmatched paths fall through to the default route.
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusSeeOther)
	})
}
