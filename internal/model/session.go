package model

import "time"

// AdminSession represents a live bearer credential issued to the single
// configured administrator. Storage is process-local (see DESIGN.md).
type AdminSession struct {
	JTI       string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at t.
func (s AdminSession) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
