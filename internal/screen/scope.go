// Package screen holds the UI-independent state machines behind each screen:
// lead forms, OTP entry, fetch-on-open lists and the dashboard carousel. Views
// in internal/cli drive these and render their state.
package screen

import (
	"context"

	"github.com/google/uuid"
)

// Scope is the lifetime of one screen instance. Work started for the screen
// runs under Context and is canceled by Close when the screen is torn down.
type Scope struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScope derives a scope from parent.
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{id: uuid.NewString(), ctx: ctx, cancel: cancel}
}

// ID identifies the screen instance; results tagged with a stale ID are dropped.
func (s *Scope) ID() string { return s.id }

func (s *Scope) Context() context.Context { return s.ctx }

// Close cancels the scope. Safe to call more than once.
func (s *Scope) Close() { s.cancel() }

// Closed reports whether the scope has been canceled.
func (s *Scope) Closed() bool { return s.ctx.Err() != nil }
