package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClient_ListPatients(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patients", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"_id":"p1","name":"Ada","age":52},{"_id":"p2","name":"Ben","age":40}]}`))
	})

	client := NewClient(server.URL, server.Client())
	patients, err := client.ListPatients(context.Background(), 2, 5)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Ada", patients[0].Name)
	assert.Equal(t, 52, patients[0].Age)
}

func TestClient_ListPatientsDefaultsPaging(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	client := NewClient(server.URL, server.Client())
	_, err := client.ListPatients(context.Background(), 0, -3)
	require.NoError(t, err)
}

func TestClient_GetPatient(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patients/p1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"_id":"p1","name":"Ada","age":52,"appointments":[{"doctor":"Dr. Lee","date":"2026-09-01","status":"scheduled"}]}}`))
	})

	client := NewClient(server.URL, server.Client())
	patient, err := client.GetPatient(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", patient.Name)
	require.Len(t, patient.Appointments, 1)
	assert.Equal(t, "Dr. Lee", patient.Appointments[0].Doctor)
}

func TestClient_PatientNotFound(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := NewClient(server.URL, server.Client())
	_, err := client.GetPatient(context.Background(), "missing")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestClient_UnauthorizedMapsToDomainError(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := NewClient(server.URL, server.Client())
	_, err := client.ListPatients(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestClient_UpstreamFailure(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(server.URL, server.Client())
	_, err := client.ListPrescriptions(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_ERROR", apperrors.ToDomainError(err).Code)
}

func TestClient_AppointmentLifecycle(t *testing.T) {
	var calls []string
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			var appt Appointment
			require.NoError(t, json.NewDecoder(r.Body).Decode(&appt))
			assert.Equal(t, "Dr. Lee", appt.Doctor)
		}
		w.WriteHeader(http.StatusOK)
	})

	client := NewClient(server.URL, server.Client())
	ctx := context.Background()
	appt := Appointment{Doctor: "Dr. Lee", Date: "2026-09-01", Status: "scheduled"}

	require.NoError(t, client.AddAppointment(ctx, "p1", appt))
	require.NoError(t, client.UpdateAppointment(ctx, "p1", "a1", appt))
	require.NoError(t, client.DeleteAppointment(ctx, "p1", "a1"))

	assert.Equal(t, []string{
		"POST /patients/p1",
		"PUT /patients/p1/a1",
		"DELETE /patients/p1/a1",
	}, calls)
}

func TestClient_CarePlans(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patients/p1/careplans", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"name":"Diabetes management","start":"2025-01-01","status":"active"}]}`))
	})

	client := NewClient(server.URL, server.Client())
	plans, err := client.ListCarePlans(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Diabetes management", plans[0].Name)
}
