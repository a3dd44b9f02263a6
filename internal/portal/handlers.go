package portal

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/login"
	"github.com/spec-kit/clinic-portal/internal/notify"
	"github.com/spec-kit/clinic-portal/internal/records"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/internal/transport"
)

// LoginHandler exposes the login view and the credential exchange.
type LoginHandler struct {
	flow *login.Coordinator
	sess *session.Session
}

// NewLoginHandler constructs the handler.
func NewLoginHandler(flow *login.Coordinator, sess *session.Session) *LoginHandler {
	return &LoginHandler{flow: flow, sess: sess}
}

// Show handles GET /login.
func (h *LoginHandler) Show(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"state":     h.flow.State(),
		"logged_in": h.sess.IsLoggedIn(c.Context()),
		"username":  h.sess.Username(c.Context()),
	}})
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Submit handles POST /login.
func (h *LoginHandler) Submit(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result := h.flow.Submit(c.Context(), req.Username, req.Password)
	if result.State == login.StateSuccess {
		return c.Redirect(result.Route, fiber.StatusSeeOther)
	}

	status := http.StatusUnauthorized
	if req.Username == "" || req.Password == "" {
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"data": result})
}

// Logout handles POST /logout: best-effort remote revoke, local clear,
// back to the login view.
func (h *LoginHandler) Logout(c *fiber.Ctx) error {
	if err := h.sess.LogoutRemote(c.Context()); err != nil {
		return err
	}
	return c.Redirect(loginRoute, fiber.StatusSeeOther)
}

// ClinicianHandler serves the GP-side views.
type ClinicianHandler struct {
	records *records.Client
}

// NewClinicianHandler constructs the handler.
func NewClinicianHandler(client *records.Client) *ClinicianHandler {
	return &ClinicianHandler{records: client}
}

// ListPatients handles GET /gp/patients.
func (h *ClinicianHandler) ListPatients(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	patients, err := h.records.ListPatients(c.Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patients})
}

// GetPatient handles GET /gp/patients/:id.
func (h *ClinicianHandler) GetPatient(c *fiber.Ctx) error {
	patient, err := h.records.GetPatient(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patient})
}

// AddAppointment handles POST /gp/patients/:id/appointments.
func (h *ClinicianHandler) AddAppointment(c *fiber.Ctx) error {
	var appt records.Appointment
	if err := c.BodyParser(&appt); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if appt.Doctor == "" || appt.Date == "" {
		return fiber.NewError(http.StatusBadRequest, "doctor and date required")
	}
	if err := h.records.AddAppointment(c.Context(), c.Params("id"), appt); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateAppointment handles PUT /gp/patients/:id/appointments/:appointmentId.
func (h *ClinicianHandler) UpdateAppointment(c *fiber.Ctx) error {
	var appt records.Appointment
	if err := c.BodyParser(&appt); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.records.UpdateAppointment(c.Context(), c.Params("id"), c.Params("appointmentId"), appt); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteAppointment handles DELETE /gp/patients/:id/appointments/:appointmentId.
func (h *ClinicianHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.records.DeleteAppointment(c.Context(), c.Params("id"), c.Params("appointmentId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// PatientHandler serves the patient-portal views. The record shown is
// always the one named by the token's patient_id claim.
type PatientHandler struct {
	records *records.Client
	sess    *session.Session
}

// NewPatientHandler constructs the handler.
func NewPatientHandler(client *records.Client, sess *session.Session) *PatientHandler {
	return &PatientHandler{records: client, sess: sess}
}

// Overview handles GET /portal.
func (h *PatientHandler) Overview(c *fiber.Ctx) error {
	patientID := h.sess.PatientID(c.Context())
	if patientID == "" {
		return fiber.NewError(http.StatusNotFound, "no patient record linked to this account")
	}
	patient, err := h.records.GetPatient(c.Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patient})
}

// Prescriptions handles GET /portal/prescriptions.
func (h *PatientHandler) Prescriptions(c *fiber.Ctx) error {
	patientID := h.sess.PatientID(c.Context())
	if patientID == "" {
		return fiber.NewError(http.StatusNotFound, "no patient record linked to this account")
	}
	prescriptions, err := h.records.ListPrescriptions(c.Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": prescriptions})
}

// CarePlans handles GET /portal/careplans.
func (h *PatientHandler) CarePlans(c *fiber.Ctx) error {
	patientID := h.sess.PatientID(c.Context())
	if patientID == "" {
		return fiber.NewError(http.StatusNotFound, "no patient record linked to this account")
	}
	plans, err := h.records.ListCarePlans(c.Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": plans})
}

// StatusHandler exposes the busy indicator and the notification center.
type StatusHandler struct {
	tracker  *transport.Tracker
	notifier *notify.Notifier
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(tracker *transport.Tracker, notifier *notify.Notifier) *StatusHandler {
	return &StatusHandler{tracker: tracker, notifier: notifier}
}

// Status handles GET /status.
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"busy":          h.tracker.Busy(),
		"in_flight":     h.tracker.Count(),
		"notifications": h.notifier.Items(),
	}})
}

// Reset handles POST /status/reset: route-level cleanup that abandons
// pending requests.
func (h *StatusHandler) Reset(c *fiber.Ctx) error {
	h.tracker.Reset()
	return c.SendStatus(http.StatusNoContent)
}

// Dismiss handles DELETE /status/notifications/:id.
func (h *StatusHandler) Dismiss(c *fiber.Ctx) error {
	h.notifier.Dismiss(c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

// HealthHandler reports process liveness.
type HealthHandler struct{}

// NewHealthHandler constructs the handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
