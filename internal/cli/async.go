package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/screen"
)

// scopedMsg is an async result addressed to the view instance that started
// it. The app drops it once that view has left the stack.
type scopedMsg interface {
	scopeID() string
}

// scopedView is a view that owns a screen.Scope.
type scopedView interface {
	scope() *screen.Scope
}

// scopeTag is embedded in result messages.
type scopeTag struct{ id string }

func (t scopeTag) scopeID() string { return t.id }

// scoped is embedded in views that run background work.
type scoped struct {
	sc *screen.Scope
}

func newScoped(state *SharedState) scoped { return scoped{sc: state.newScope()} }

func (s scoped) scope() *screen.Scope { return s.sc }
func (s scoped) tag() scopeTag        { return scopeTag{id: s.sc.ID()} }

// Close cancels in-flight requests and pending timers.
func (s scoped) Close() { s.sc.Close() }

// scopedTick delivers fn's message after d unless the scope closes first.
func scopedTick(sc *screen.Scope, d time.Duration, fn func() tea.Msg) tea.Cmd {
	return func() tea.Msg {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-sc.Context().Done():
			return nil
		case <-t.C:
			return fn()
		}
	}
}
