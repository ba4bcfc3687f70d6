package visitor_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guestpass/pkg/visitor"
)

func TestRecordUsable(t *testing.T) {
	t.Parallel()

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		mutate func(r *visitor.Record)
		want   bool
	}{
		{name: "fresh record", mutate: func(r *visitor.Record) {}, want: true},
		{name: "deactivated", mutate: func(r *visitor.Record) { r.Deactivate() }, want: false},
		{name: "exhausted quota", mutate: func(r *visitor.Record) { r.SessionsLeft = 0 }, want: false},
		{name: "unlimited quota", mutate: func(r *visitor.Record) { r.SessionsLeft = visitor.UnlimitedSessions }, want: true},
		{name: "unlimited but deactivated", mutate: func(r *visitor.Record) {
			r.SessionsLeft = visitor.UnlimitedSessions
			r.Deactivate()
		}, want: false},
		{name: "before validity window", mutate: func(r *visitor.Record) { r.ValidFrom = &future }, want: false},
		{name: "after validity window", mutate: func(r *visitor.Record) { r.ValidUntil = &past }, want: false},
		{name: "inside validity window", mutate: func(r *visitor.Record) {
			r.ValidFrom = &past
			r.ValidUntil = &future
		}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := visitor.NewRecord("fred@example.com", "reports", 3)
			tt.mutate(rec)
			assert.Equal(t, tt.want, rec.Usable(now))
		})
	}
}

func TestRecordUsableNil(t *testing.T) {
	t.Parallel()

	var rec *visitor.Record
	assert.False(t, rec.Usable(time.Now()))
}

func TestDeactivateIsPermanent(t *testing.T) {
	t.Parallel()

	rec := visitor.NewRecord("fred@example.com", "reports", visitor.UnlimitedSessions)
	rec.Deactivate()

	assert.False(t, rec.IsActive)
	assert.False(t, rec.Usable(time.Now()))
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	rec := visitor.NewRecord("fred@example.com", "reports", 1)
	snap := rec.Snapshot()
	assert.Equal(t, rec.ID, snap.ID)
	assert.Equal(t, rec.Scope, snap.Scope)

	decoded, err := visitor.DecodeSnapshot(snap.Encode())
	require.NoError(t, err)
	assert.Equal(t, snap, decoded)
}

func TestDecodeSnapshotInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not json", raw: "foobar"},
		{name: "wrong shape", raw: `["a","b"]`},
		{name: "zero identifier", raw: `{"id":"` + uuid.Nil.String() + `","scope":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := visitor.DecodeSnapshot(tt.raw)
			assert.ErrorIs(t, err, visitor.ErrInvalidSnapshot)
		})
	}
}
