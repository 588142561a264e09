package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/vgn360/internal/config"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/screen"
	"github.com/alexanderramin/vgn360/internal/session"
)

// SharedState holds what every view needs, passed by pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Timers, shortened in tests.
	SplashDelay      time.Duration
	CarouselInterval time.Duration

	// ctx is the parent of every screen scope.
	ctx context.Context
}

func newSharedState(ctx context.Context, app *App) *SharedState {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SharedState{
		App:              app,
		SplashDelay:      2500 * time.Millisecond,
		CarouselInterval: screen.CarouselInterval,
		ctx:              ctx,
	}
}

func (s *SharedState) Session() *session.Store { return s.App.Session }
func (s *SharedState) Gateway() gateway.Client { return s.App.Gateway }
func (s *SharedState) Logger() *zerolog.Logger { return &s.App.Logger }

// Config returns the loaded settings, or zero values when none were loaded.
func (s *SharedState) Config() config.Config {
	if s.App.Config == nil {
		return config.Config{}
	}
	return *s.App.Config
}

func (s *SharedState) newScope() *screen.Scope { return screen.NewScope(s.ctx) }

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
