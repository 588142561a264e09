package formatter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// waitSpinner sets the frames and rate of CLI wait lines.
var waitSpinner = spinner.Dot

// StartSpinner draws message behind an animated frame on out, normally
// stderr, until the returned function is called. The stop function clears
// the line and may be called more than once.
func StartSpinner(out io.Writer, message string) func() {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		animate(ctx, out, message, waitSpinner)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}

func animate(ctx context.Context, out io.Writer, message string, s spinner.Spinner) {
	ticker := time.NewTicker(s.FPS)
	defer ticker.Stop()
	for i := 0; ; i++ {
		frame := s.Frames[i%len(s.Frames)]
		fmt.Fprintf(out, "\r  %s %s", StyleBrand.Render(frame), Dim(message))
		select {
		case <-ctx.Done():
			fmt.Fprint(out, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}
