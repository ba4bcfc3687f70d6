package visitor

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// Snapshot is the minimal visitor projection persisted in session state.
// Its presence under the configured session key is, after the first request,
// the sole signal that the browser session belongs to a visitor.
type Snapshot struct {
	ID    uuid.UUID `json:"id"`
	Scope string    `json:"scope,omitempty"`
}

// Encode serializes the snapshot for storage in a string-valued session.
func (s Snapshot) Encode() string {
	b, _ := json.Marshal(s) // fixed field set, cannot fail
	return string(b)
}

// DecodeSnapshot parses a stored session value. Returns ErrInvalidSnapshot
// for anything that does not decode to a snapshot with a non-zero identifier.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, errors.Join(ErrInvalidSnapshot, err)
	}
	if s.ID == uuid.Nil {
		return Snapshot{}, ErrInvalidSnapshot
	}
	return s, nil
}
