package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Role is the portal-side view of the token's admin flag.
type Role string

const (
	RoleClinician Role = "CLINICIAN"
	RolePatient   Role = "PATIENT"
	RoleUnknown   Role = "UNKNOWN"
)

// Claims is the payload the portal reads out of a credential token.
// The signature is never verified here; the record service re-validates
// it on every request, this copy exists for display and gating only.
type Claims struct {
	Username  string
	PatientID string
	Admin     *bool
	ExpiresAt *time.Time
	Role      Role
}

// Expired reports whether the claims carry an expiry in the past.
// Claims without exp never expire client-side.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now)
}

// DecodeClaims extracts the claims payload from a token without
// verifying its signature. Any malformed input yields (nil, false).
func DecodeClaims(token string) (*Claims, bool) {
	if token == "" {
		return nil, false
	}

	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, false
	}

	claims := &Claims{Role: RoleUnknown}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		claims.ExpiresAt = &t
	}
	if user, ok := mapClaims["user"].(string); ok {
		claims.Username = user
	}
	if patientID, ok := mapClaims["patient_id"].(string); ok {
		claims.PatientID = patientID
	}
	if admin, ok := mapClaims["admin"].(bool); ok {
		claims.Admin = &admin
		if admin {
			claims.Role = RoleClinician
		} else {
			claims.Role = RolePatient
		}
	}

	return claims, true
}
