// Package models defines the synchronized record envelope shared by every
// kind, the concrete payloads (classes, assignments, tasks) and the small
// pure helpers used to filter, sort and format them.
package models

import (
	"github.com/google/uuid"
)

// Payload is implemented by every synchronized record kind. Kind must work
// on the zero value.
type Payload interface {
	Kind() Kind
	Validate() error
}

// Record is the envelope around a kind-specific payload. UpdatedAt is the
// last-write-wins clock; Synced=false marks the record dirty; Deleted marks
// a tombstone.
type Record[P Payload] struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Payload   P      `json:"payload"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	Deleted   bool   `json:"deleted"`
	Synced    bool   `json:"synced"`
}

// NewRecord allocates a fresh dirty record with a random id.
func NewRecord[P Payload](payload P, now int64) *Record[P] {
	return &Record[P]{
		ID:        uuid.NewString(),
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Kind reports the collection the record belongs to.
func (r *Record[P]) Kind() Kind {
	var p P
	return p.Kind()
}

// Version is the value the remote acknowledges a push against.
func (r *Record[P]) Version() int64 {
	return r.UpdatedAt
}

// MarkUpdated records a local mutation at now. Every mutation yields a
// version strictly greater than the previous one, even when the wall clock
// stalls or steps back.
func (r *Record[P]) MarkUpdated(now int64) {
	r.UpdatedAt = Advance(r.UpdatedAt, now)
	r.Synced = false
}

// MarkDeleted turns the record into a dirty tombstone.
func (r *Record[P]) MarkDeleted(now int64) {
	r.Deleted = true
	r.MarkUpdated(now)
}

// Clone returns a shallow copy of the envelope.
func (r *Record[P]) Clone() *Record[P] {
	c := *r
	return &c
}

// Advance returns the next tick of a per-record clock that was at prev when
// the wall clock reads now. The result is always greater than prev.
func Advance(prev, now int64) int64 {
	if now > prev {
		return now
	}
	return prev + 1
}

// RemoteWins is the conflict rule: a remote version replaces the local one
// only when there is no local copy or the remote is strictly newer. Ties
// keep the local copy.
func RemoteWins[P Payload](local, remote *Record[P]) bool {
	return local == nil || remote.UpdatedAt > local.UpdatedAt
}

// Predicate selects records in listings.
type Predicate[P Payload] func(*Record[P]) bool

// Match reports whether rec satisfies every predicate.
func Match[P Payload](rec *Record[P], preds ...Predicate[P]) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

// Filter returns the records matching every predicate in a new slice.
func Filter[P Payload](recs []*Record[P], preds ...Predicate[P]) []*Record[P] {
	var out []*Record[P]
	for _, r := range recs {
		if Match(r, preds...) {
			out = append(out, r)
		}
	}
	return out
}

// Limit keeps at most n leading records. A non-positive n keeps all.
func Limit[P Payload](recs []*Record[P], n int) []*Record[P] {
	if n <= 0 || n >= len(recs) {
		return recs
	}
	return recs[:n]
}
