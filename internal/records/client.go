package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// Client talks to the clinical record service. All calls run through
// the instrumented HTTP client, so credential injection, busy tracking
// and 401/5xx reactions happen underneath; business-level errors
// (patient not found and the like) are returned to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a record-service client on top of the given HTTP client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// ListPatients fetches one page of patients.
func (c *Client) ListPatients(ctx context.Context, page, limit int) ([]Patient, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var patients []Patient
	err := c.get(ctx, "/patients?"+query.Encode(), &patients)
	return patients, err
}

// GetPatient fetches a single patient by id.
func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	if err := c.get(ctx, "/patients/"+url.PathEscape(id), &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// AddAppointment creates an appointment under a patient.
func (c *Client) AddAppointment(ctx context.Context, patientID string, appt Appointment) error {
	return c.send(ctx, http.MethodPost, "/patients/"+url.PathEscape(patientID), appt)
}

// UpdateAppointment replaces an appointment under a patient.
func (c *Client) UpdateAppointment(ctx context.Context, patientID, appointmentID string, appt Appointment) error {
	return c.send(ctx, http.MethodPut, "/patients/"+url.PathEscape(patientID)+"/"+url.PathEscape(appointmentID), appt)
}

// DeleteAppointment removes an appointment under a patient.
func (c *Client) DeleteAppointment(ctx context.Context, patientID, appointmentID string) error {
	return c.send(ctx, http.MethodDelete, "/patients/"+url.PathEscape(patientID)+"/"+url.PathEscape(appointmentID), nil)
}

// ListPrescriptions fetches a patient's prescriptions.
func (c *Client) ListPrescriptions(ctx context.Context, patientID string) ([]Prescription, error) {
	var prescriptions []Prescription
	err := c.get(ctx, "/patients/"+url.PathEscape(patientID)+"/prescriptions", &prescriptions)
	return prescriptions, err
}

// ListCarePlans fetches a patient's care plans.
func (c *Client) ListCarePlans(ctx context.Context, patientID string) ([]CarePlan, error) {
	var plans []CarePlan
	err := c.get(ctx, "/patients/"+url.PathEscape(patientID)+"/careplans", &plans)
	return plans, err
}

// envelope is the record-service response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("record service call: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.NewUnauthorized("record service rejected credential")
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFound("record", nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return apperrors.NewUpstreamError(resp.StatusCode, nil)
	case resp.StatusCode >= http.StatusBadRequest:
		return apperrors.NewDomainError("REQUEST_FAILED",
			fmt.Sprintf("record service returned %d", resp.StatusCode),
			resp.StatusCode, nil)
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read record service response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record service response: %w", err)
	}
	return nil
}
