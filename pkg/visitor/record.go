package visitor

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedSessions is the SessionsLeft sentinel for records whose quota is
// never metered.
const UnlimitedSessions = -1

// Record represents one visitor grant. Records are created by an external
// issuing process and never deleted by this package; exhausted or deactivated
// records simply stop authenticating.
type Record struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Scope        string     `json:"scope" db:"scope"`
	SessionsLeft int        `json:"sessions_left" db:"sessions_left"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	ValidFrom    *time.Time `json:"valid_from,omitempty" db:"valid_from"`
	ValidUntil   *time.Time `json:"valid_until,omitempty" db:"valid_until"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// NewRecord creates an active record with the given visit quota. Pass
// UnlimitedSessions for unmetered access.
func NewRecord(email, scope string, sessionsLeft int) *Record {
	now := time.Now()
	return &Record{
		ID:           uuid.New(),
		Email:        email,
		Scope:        scope,
		SessionsLeft: sessionsLeft,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Unlimited returns true if the record's quota is never decremented.
func (r *Record) Unlimited() bool {
	return r != nil && r.SessionsLeft == UnlimitedSessions
}

// Usable reports whether the record may authenticate at the given instant:
// active, inside its validity window, and holding remaining quota.
func (r *Record) Usable(now time.Time) bool {
	if r == nil || !r.IsActive {
		return false
	}
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidUntil != nil && now.After(*r.ValidUntil) {
		return false
	}
	return r.Unlimited() || r.SessionsLeft > 0
}

// Deactivate permanently disables the record. Once inactive it can never
// authenticate again regardless of remaining quota; persist with Store.Save.
func (r *Record) Deactivate() {
	if r == nil {
		return
	}
	r.IsActive = false
}

// Snapshot returns the minimal session projection of the record.
func (r *Record) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{ID: r.ID, Scope: r.Scope}
}
