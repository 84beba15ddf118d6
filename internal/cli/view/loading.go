package view

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// loadingID identifies the one loading indicator that may exist at a time
const loadingID = "loadingSpinner"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	loadingMu  sync.Mutex
	indicators = map[string]*spinner{}

	// isTerminal decides whether the indicator animates; non-terminal
	// writers get no output at all.
	isTerminal = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

type spinner struct {
	stop chan struct{}
	done chan struct{}
}

// ShowLoading attaches the loading indicator to w. Any indicator already
// showing is removed first.
func ShowLoading(w io.Writer) {
	loadingMu.Lock()
	defer loadingMu.Unlock()

	if existing, ok := indicators[loadingID]; ok {
		existing.halt()
	}

	s := &spinner{stop: make(chan struct{}), done: make(chan struct{})}
	indicators[loadingID] = s

	if !isTerminal(w) {
		close(s.done)
		return
	}
	go s.run(w)
}

// HideLoading removes the loading indicator if one is showing
func HideLoading() {
	loadingMu.Lock()
	defer loadingMu.Unlock()

	if s, ok := indicators[loadingID]; ok {
		s.halt()
		delete(indicators, loadingID)
	}
}

// LoadingVisible reports whether an indicator is currently attached
func LoadingVisible() bool {
	loadingMu.Lock()
	defer loadingMu.Unlock()
	_, ok := indicators[loadingID]
	return ok
}

func (s *spinner) run(w io.Writer) {
	defer close(s.done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(w, "\r%s Loading...", spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-s.stop:
			fmt.Fprint(w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

func (s *spinner) halt() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	<-s.done
}
