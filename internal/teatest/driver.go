// Package teatest runs a tea.Model without a tea.Program.
//
// Update is called directly and every returned Cmd is executed and fed back
// until the model goes quiet, so a test sees the same sequence of messages a
// running program would, minus the terminal. Cmds that block longer than the
// driver's timeout (timers, cursor blink) are abandoned.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many messages one Send may cascade into.
const MaxSteps = 200

// DefaultCmdTimeout is how long a Cmd may run before it is abandoned.
// Message factories and in-memory fakes return in microseconds.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a model and drains what it returns.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced. The runtime
	// normally swallows it, so the driver records it itself.
	Quitting bool

	cmdTimeout time.Duration
	skip       []func(tea.Msg) bool
	seen       []string
}

// Option configures a Driver.
type Option func(*Driver)

// New creates a Driver around model. Call DrainInit to run Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{
		T:          t,
		Model:      model,
		cmdTimeout: DefaultCmdTimeout,
		skip:       []func(tea.Msg) bool{isCursorBlink},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout sets how long each Cmd may block, for models whose Cmds
// talk to a local server or wait on short timers.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

// WithSkip drops messages matching fn instead of delivering them.
func WithSkip(fn func(tea.Msg) bool) Option {
	return func(d *Driver) { d.skip = append(d.skip, fn) }
}

// DrainInit runs the model's Init command.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init())
}

// Send delivers msg and drains the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg)
}

// Run executes cmd as if the model had returned it.
func (d *Driver) Run(cmd tea.Cmd) {
	d.T.Helper()
	d.drain(cmd)
}

// View renders the model.
func (d *Driver) View() string { return d.Model.View() }

// Seen returns the type names of every message delivered so far, in order.
func (d *Driver) Seen() []string {
	return append([]string(nil), d.seen...)
}

// Saw reports whether a message of the same type as sample was delivered.
func (d *Driver) Saw(sample tea.Msg) bool {
	name := fmt.Sprintf("%T", sample)
	for _, s := range d.seen {
		if s == name {
			return true
		}
	}
	return false
}

// ── keys ─────────────────────────────────────────────────────────────────────

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+r":    tea.KeyCtrlR,
}

// Press sends each named key in turn: "enter", "esc", "ctrl+r", "left" and
// so on, or a single character.
func (d *Driver) Press(names ...string) {
	d.T.Helper()
	for _, name := range names {
		if t, ok := namedKeys[name]; ok {
			d.Send(tea.KeyMsg{Type: t})
			continue
		}
		runes := []rune(name)
		if len(runes) != 1 {
			d.T.Fatalf("teatest: unknown key %q", name)
		}
		d.PressKey(runes[0])
	}
}

// PressKey sends one character.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressEnter sends Enter.
func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Press("enter")
}

// PressEsc sends Escape.
func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Press("esc")
}

// Type sends s one character at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// ── draining ─────────────────────────────────────────────────────────────────

// deliver runs Update for msg and everything it cascades into. Commands are
// processed in the order they were returned; batches are flattened in place.
func (d *Driver) deliver(first tea.Msg) {
	d.T.Helper()
	queue := []tea.Msg{first}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxSteps {
			d.T.Logf("teatest: stopped after %d messages", MaxSteps)
			return
		}
		msg := queue[0]
		queue = queue[1:]

		if _, ok := msg.(tea.QuitMsg); ok {
			d.Quitting = true
		}
		d.seen = append(d.seen, fmt.Sprintf("%T", msg))
		var cmd tea.Cmd
		d.Model, cmd = d.Model.Update(msg)
		if d.Quitting {
			return
		}
		queue = append(queue, d.collect(cmd)...)
	}
}

func (d *Driver) drain(cmd tea.Cmd) {
	d.T.Helper()
	for _, msg := range d.collect(cmd) {
		if d.Quitting {
			return
		}
		d.deliver(msg)
	}
}

// collect executes cmd and returns the messages it produced, expanding
// batches and dropping skipped or timed-out results.
func (d *Driver) collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := run(cmd, d.cmdTimeout)
	if msg == nil || d.skipped(msg) {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, d.collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func (d *Driver) skipped(msg tea.Msg) bool {
	for _, fn := range d.skip {
		if fn(msg) {
			return true
		}
	}
	return false
}

// run executes cmd, giving up after timeout.
func run(cmd tea.Cmd, timeout time.Duration) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case msg := <-ch:
		return msg
	case <-t.C:
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which chain into half-second timers.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
