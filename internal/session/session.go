package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Session derives authentication state from the current slot contents.
// Nothing is cached: every read goes back to the store, so the oracle
// and the store can never disagree.
type Session struct {
	store      Store
	revokeURL  string
	credHeader string
	client     *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewSession builds the oracle. revokeURL may be empty, in which case
// LogoutRemote only clears locally. The client must be a plain one:
// revoke calls must not run through the interceptor pipeline.
func NewSession(store Store, revokeURL, credHeader string, client *http.Client, logger *zap.Logger) *Session {
	if client == nil {
		client = http.DefaultClient
	}
	if credHeader == "" {
		credHeader = "x-access-token"
	}
	return &Session{
		store:      store,
		revokeURL:  revokeURL,
		credHeader: credHeader,
		client:     client,
		logger:     logger,
		now:        time.Now,
	}
}

// Token returns the stored credential, or "" when the slot is empty.
func (s *Session) Token(ctx context.Context) string {
	token, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			s.logger.Warn("token slot read failed", zap.Error(err))
		}
		return ""
	}
	return token
}

// IsLoggedIn reports whether a usable credential is present. Decodable
// claims with an expiry decide by expiry; otherwise token presence
// decides. A token that does not decode at all therefore still counts
// as logged in — the record service is the authority and will reject
// it with a 401, which clears the slot.
func (s *Session) IsLoggedIn(ctx context.Context) bool {
	token := s.Token(ctx)
	if token == "" {
		return false
	}
	claims, ok := DecodeClaims(token)
	if ok && claims.ExpiresAt != nil {
		return !claims.Expired(s.now())
	}
	return true
}

// Username returns the display name claim, or "" on any decode failure.
func (s *Session) Username(ctx context.Context) string {
	claims, ok := s.claims(ctx)
	if !ok {
		return ""
	}
	return claims.Username
}

// PatientID returns the patient identifier claim, or "" on any decode failure.
func (s *Session) PatientID(ctx context.Context) string {
	claims, ok := s.claims(ctx)
	if !ok {
		return ""
	}
	return claims.PatientID
}

// Role returns the three-state role derived at decode time.
func (s *Session) Role(ctx context.Context) Role {
	claims, ok := s.claims(ctx)
	if !ok {
		return RoleUnknown
	}
	return claims.Role
}

// IsClinician reports whether the token marks a clinician (admin true).
func (s *Session) IsClinician(ctx context.Context) bool {
	return s.Role(ctx) == RoleClinician
}

// IsPatient reports whether the token marks a patient (admin false).
// A token without the admin claim fails both role checks.
func (s *Session) IsPatient(ctx context.Context) bool {
	return s.Role(ctx) == RolePatient
}

// StoreToken overwrites the credential slot.
func (s *Session) StoreToken(ctx context.Context, token string) error {
	return s.store.Save(ctx, token)
}

// Logout clears the slot locally. Clearing an already-empty slot is a
// no-op, so concurrent 401 handlers may all call this safely.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// LogoutRemote notifies the session-revoke endpoint, then clears
// locally. The remote call is best-effort: its failure never blocks
// the local clear.
func (s *Session) LogoutRemote(ctx context.Context) error {
	if s.revokeURL != "" {
		if err := s.revoke(ctx); err != nil {
			s.logger.Warn("session revoke failed", zap.Error(err))
		}
	}
	return s.Logout(ctx)
}

func (s *Session) revoke(ctx context.Context) error {
	token := s.Token(ctx)
	if token == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.revokeURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set(s.credHeader, token)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *Session) claims(ctx context.Context) (*Claims, bool) {
	token := s.Token(ctx)
	if token == "" {
		return nil, false
	}
	return DecodeClaims(token)
}
