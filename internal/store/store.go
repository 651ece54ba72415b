// Package store provides the memory atom storage interface and SQLite
// implementation. The hot path is append-only: atoms are created once and
// read many times; only importance and related-memory links may be amended
// by administrative consolidation passes.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/eoralabs/aura-memory/internal/model"
)

// ErrNoContent is returned by Create when an atom carries neither a
// message nor a response.
var ErrNoContent = errors.New("atom requires a message or a response")

// ErrNotFound is returned when an atom id does not exist.
var ErrNotFound = errors.New("atom not found")

// CreateParams holds parameters for storing a new atom. Derived fields
// (emotion scores, context, tags, heuristic levels) are computed by the
// store from the message/response text at creation time.
type CreateParams struct {
	ID         string // assigned if empty
	UserID     string
	SessionID  string
	Message    string
	Response   string
	Timestamp  time.Time // now if zero
	MemoryType string    // default "conversation"
	Importance *float64  // default 0.5
	Related    []string
}

// QueryParams is a conjunction of filters. Zero-valued fields are ignored.
type QueryParams struct {
	ID         string
	UserID     string
	SessionID  string
	MemoryType string

	// Tags matches atoms whose tag set intersects the given tags. With
	// TagsInText set, an atom also matches when its message or response
	// contains the tag literal (case-insensitive).
	Tags       []string
	TagsInText bool

	// Contains matches atoms whose message or response contains the
	// substring (case-insensitive).
	Contains string

	// MatchAny matches atoms whose message or response contains any of
	// the given keywords.
	MatchAny []string

	Since time.Time // inclusive
	Until time.Time // exclusive

	Limit int // default 20
}

// AmendParams holds the administrative rewrite of an existing atom.
// Only importance and related-memory links can change after creation.
type AmendParams struct {
	ID         string
	Importance *float64
	Related    []string // replaces the stored set when non-nil
}

// Store defines the atom storage interface.
type Store interface {
	// Create validates and appends a new atom, returning it with all
	// derived fields populated.
	Create(ctx context.Context, p CreateParams) (*model.Atom, error)

	// Query returns atoms matching all given filters, newest first.
	Query(ctx context.Context, p QueryParams) ([]model.Atom, error)

	// Count returns the number of atoms matching the filters.
	Count(ctx context.Context, p QueryParams) (int, error)

	// Amend rewrites importance and/or related links of one atom.
	Amend(ctx context.Context, p AmendParams) error

	// Close closes the store.
	Close() error
}
