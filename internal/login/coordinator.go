package login

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/notify"
	"github.com/spec-kit/clinic-portal/internal/session"
)

// State is the coordinator's position in the login flow.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailure    State = "failure"
)

// Landing routes by role.
const (
	ClinicianRoute = "/gp/patients"
	PatientRoute   = "/portal"
)

// Result reports the outcome of a submit.
type Result struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
	Route   string `json:"route,omitempty"`
}

// Coordinator orchestrates the credential exchange: validate input,
// call the login endpoint with Basic credentials, persist the returned
// token and pick the landing route from the derived role.
type Coordinator struct {
	loginURL string
	client   *http.Client
	session  *session.Session
	notifier *notify.Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	state State
}

// NewCoordinator builds the coordinator. The client should be the
// instrumented one so login calls show up in the busy indicator.
func NewCoordinator(loginURL string, client *http.Client, sess *session.Session, notifier *notify.Notifier, logger *zap.Logger) *Coordinator {
	if client == nil {
		client = http.DefaultClient
	}
	return &Coordinator{
		loginURL: loginURL,
		client:   client,
		session:  sess,
		notifier: notifier,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current flow state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one pass through the flow. Empty credentials fail
// immediately without a network call.
func (c *Coordinator) Submit(ctx context.Context, username, password string) Result {
	if username == "" || password == "" {
		return c.fail(notify.LevelWarning, "please enter username and password")
	}

	c.setState(StateSubmitting)

	token, err := c.exchange(ctx, username, password)
	if err != nil {
		c.logger.Warn("credential exchange failed", zap.Error(err))
		return c.fail(notify.LevelError, "login failed; check your credentials")
	}
	if token == "" {
		return c.fail(notify.LevelError, "no token returned from API")
	}

	if err := c.session.StoreToken(ctx, token); err != nil {
		c.logger.Error("token persist failed", zap.Error(err))
		return c.fail(notify.LevelError, "could not store credential")
	}

	// Token is stored before the role check: an unknown role leaves it
	// in place and the user parked on the login screen.
	switch {
	case c.session.IsClinician(ctx):
		return c.succeed("signed in", ClinicianRoute)
	case c.session.IsPatient(ctx):
		return c.succeed("signed in", PatientRoute)
	default:
		return c.fail(notify.LevelError, "unknown role in token")
	}
}

// loginPayload is the credential exchange response shape.
type loginPayload struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

func (c *Coordinator) exchange(ctx context.Context, username, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.loginURL, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(username, password)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var payload loginPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", err
	}
	return payload.Data.Token, nil
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Coordinator) fail(level notify.Level, message string) Result {
	c.setState(StateFailure)
	c.notifier.Push(level, message, "Login")
	return Result{State: StateFailure, Message: message}
}

func (c *Coordinator) succeed(message, route string) Result {
	c.setState(StateSuccess)
	c.notifier.Success(message, "Login")
	return Result{State: StateSuccess, Message: message, Route: route}
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "login endpoint returned " + http.StatusText(e.status)
}
