package nav

import "fmt"

// TransitionKind describes how the stack changed.
type TransitionKind int

const (
	Push TransitionKind = iota
	PopTo
	Replace
	Pop
)

func (k TransitionKind) String() string {
	switch k {
	case Push:
		return "push"
	case PopTo:
		return "pop_to"
	case Replace:
		return "replace"
	case Pop:
		return "pop"
	}
	return "unknown"
}

// Transition is the outcome of a successful router call. Removed counts the
// frames torn down, including a replaced top frame.
type Transition struct {
	Kind    TransitionKind
	From    Route
	To      Route
	Removed int
}

// Router is a named-screen stack. Every frame owns its own params; nothing is
// shared between frames.
type Router struct {
	stack []Route
}

// NewRouter starts a stack at initial.
func NewRouter(initial Route) (*Router, error) {
	if initial.Params == nil {
		initial.Params = NoParams{}
	}
	if err := checkParams(initial); err != nil {
		return nil, err
	}
	return &Router{stack: []Route{initial}}, nil
}

// Current returns the top frame.
func (r *Router) Current() Route {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of frames on the stack.
func (r *Router) Depth() int { return len(r.stack) }

// Stack returns a copy of the frames, bottom first.
func (r *Router) Stack() []Route {
	out := make([]Route, len(r.stack))
	copy(out, r.stack)
	return out
}

// Navigate opens to. When the screen is already on the stack the router
// returns to that frame with the new params; otherwise it pushes.
func (r *Router) Navigate(to Route) (Transition, error) {
	to = normalize(to)
	from := r.Current()
	if err := r.check(from, to); err != nil {
		return Transition{}, err
	}

	for i, frame := range r.stack {
		if frame.Screen != to.Screen {
			continue
		}
		removed := len(r.stack) - (i + 1)
		r.stack = r.stack[:i+1]
		r.stack[i] = to
		return Transition{Kind: PopTo, From: from, To: to, Removed: removed}, nil
	}

	r.stack = append(r.stack, to)
	return Transition{Kind: Push, From: from, To: to}, nil
}

// Replace swaps the top frame for to.
func (r *Router) Replace(to Route) (Transition, error) {
	to = normalize(to)
	from := r.Current()
	if err := r.check(from, to); err != nil {
		return Transition{}, err
	}
	r.stack[len(r.stack)-1] = to
	return Transition{Kind: Replace, From: from, To: to, Removed: 1}, nil
}

// Back pops the top frame on screens that support native back.
func (r *Router) Back() (Transition, error) {
	from := r.Current()
	if !HasNativeBack(from.Screen) || len(r.stack) < 2 {
		return Transition{}, fmt.Errorf("%w from %s", ErrNoBack, from.Screen)
	}
	r.stack = r.stack[:len(r.stack)-1]
	return Transition{Kind: Pop, From: from, To: r.Current(), Removed: 1}, nil
}

func (r *Router) check(from, to Route) error {
	if err := checkParams(to); err != nil {
		return err
	}
	if !CanTransition(from.Screen, to.Screen) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from.Screen, to.Screen)
	}
	return nil
}

func normalize(r Route) Route {
	if r.Params == nil {
		r.Params = NoParams{}
	}
	return r
}
