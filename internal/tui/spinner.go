package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws a single in-place status line while a blocking step runs,
// such as an npm install whose own output is sent to the log file.
type Spinner struct {
	w       io.Writer
	message string
	start   time.Time

	mu      sync.Mutex
	done    chan struct{}
	exited  chan struct{}
	stopped bool
}

// StartSpinner begins redrawing message on w every 100ms until Stop.
func StartSpinner(w io.Writer, message string) *Spinner {
	s := &Spinner{
		w:       w,
		message: message,
		start:   time.Now(),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Stop clears the spinner line and, when final is non-empty, prints it with
// the elapsed time. Stop is safe to call more than once.
func (s *Spinner) Stop(final string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)
	<-s.exited
	fmt.Fprint(s.w, "\r\033[K")
	if final != "" {
		fmt.Fprintf(s.w, "%s %s\n", final, MutedStyle.Render("("+formatElapsed(time.Since(s.start))+")"))
	}
}

func (s *Spinner) loop() {
	defer close(s.exited)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			frame := spinnerFrames[tick%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r\033[K%s %s (%s)", frame, s.message, formatElapsed(time.Since(s.start)))
		}
	}
}

// formatElapsed formats a duration for display in the status line.
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
