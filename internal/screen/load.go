package screen

import (
	"errors"

	"github.com/alexanderramin/vgn360/internal/gateway"
)

// LoadState is the phase of a fetch-on-open screen.
type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Empty
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "success"
	case Empty:
		return "empty"
	case Failed:
		return "error"
	}
	return "unknown"
}

// Load tracks a single fetch. It starts in Loading and leaves it exactly once.
type Load[T any] struct {
	State   LoadState
	Data    T
	Err     error
	Message string // user-facing text in the Failed state
}

// NewLoad returns a Load in the Loading state.
func NewLoad[T any]() Load[T] {
	return Load[T]{State: Loading}
}

// Resolve settles the fetch. An error moves to Failed with failMsg (or the
// generic connection message when failMsg is empty); otherwise isEmpty decides
// between Empty and Loaded. Once settled, later calls are ignored.
func (l Load[T]) Resolve(data T, err error, isEmpty func(T) bool, failMsg string) Load[T] {
	if l.State != Loading {
		return l
	}
	if err != nil {
		if failMsg == "" {
			failMsg = gateway.GenericFailureMessage
		}
		return Load[T]{State: Failed, Err: err, Message: failMsg}
	}
	if isEmpty != nil && isEmpty(data) {
		return Load[T]{State: Empty, Data: data}
	}
	return Load[T]{State: Loaded, Data: data}
}

// Canceled reports whether the fetch failed only because its screen closed.
func (l Load[T]) Canceled() bool {
	return l.State == Failed && errors.Is(l.Err, gateway.ErrCanceled)
}

// IsEmptySlice is an isEmpty func for list results.
func IsEmptySlice[E any](s []E) bool { return len(s) == 0 }

// IsNil is an isEmpty func for single-record results.
func IsNil[E any](p *E) bool { return p == nil }
