package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner shows progress on the diagnostic writer while a long step runs.
// It only animates on a terminal.
type Spinner struct {
	r      *Renderer
	msg    string
	frames spinner.Spinner

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a stopped spinner with the given message.
func (r *Renderer) NewSpinner(msg string) *Spinner {
	return &Spinner{r: r, msg: msg, frames: spinner.MiniDot}
}

// Start begins the animation. It is a no-op when output is not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.r.isTTY || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := s.frames.Frames[i%len(s.frames.Frames)]
		_, _ = fmt.Fprintf(s.r.errOut, "\r%s %s", s.r.styles.Info.Render(frame), s.msg)
		select {
		case <-stop:
			_, _ = fmt.Fprint(s.r.errOut, "\r\x1b[K")
			return
		case <-ticker.C:
		}
	}
}

// halt stops the animation and clears its line.
func (s *Spinner) halt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

// Success stops the spinner and writes a success line.
func (s *Spinner) Success(msg string) {
	s.halt()
	s.r.Success(msg)
}

// Fail stops the spinner and writes a failure line.
func (s *Spinner) Fail(msg string) {
	s.halt()
	s.r.Println(s.r.styles.Error.Render("✗ " + msg))
}
