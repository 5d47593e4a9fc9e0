package automation

import (
	"strings"
	"sync"

	"github.com/dawctl/dawctl/internal/platform"
)

// Window is a located target-application window. Bounds are the bounds
// observed at the most recent refresh; coordinate translation always goes
// through Locator.Bounds, which re-reads them.
type Window struct {
	Handle    uintptr
	Title     string
	Bounds    platform.Bounds
	Visible   bool
	Minimized bool
}

// Locator finds and focuses the target application's window by title
// substring and caches the handle. Any caller may trigger re-acquisition,
// but the mutex keeps at most one lookup in flight.
type Locator struct {
	wm    platform.WindowManager
	title string

	mu     sync.Mutex
	cached *Window
}

// NewLocator creates a Locator matching windows whose title contains
// titleSubstring case-insensitively.
func NewLocator(wm platform.WindowManager, titleSubstring string) *Locator {
	return &Locator{wm: wm, title: titleSubstring}
}

// Locate scans the OS window list, caches and focuses the first match.
// There is no retry at this layer; callers wrap Locate with WithRetry when
// they expect the window to appear asynchronously (e.g. during app launch).
func (l *Locator) Locate() (*Window, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locateLocked()
}

func (l *Locator) locateLocked() (*Window, error) {
	windows, err := l.wm.ListWindows()
	if err != nil {
		return nil, NotFound("window scan failed: %v", err)
	}

	needle := strings.ToLower(l.title)
	for _, w := range windows {
		if !strings.Contains(strings.ToLower(w.Title), needle) {
			continue
		}
		if err := l.wm.FocusWindow(w.Handle); err != nil {
			return nil, NotFound("found window %q but could not focus it: %v", w.Title, err)
		}
		l.cached = &Window{
			Handle:    w.Handle,
			Title:     w.Title,
			Bounds:    w.Bounds,
			Visible:   w.Visible,
			Minimized: w.Minimized,
		}
		return l.cached, nil
	}
	return nil, NotFound("no window with title containing %q", l.title)
}

// Current returns the cached window, locating it first if needed.
func (l *Locator) Current() (*Window, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil {
		return l.cached, nil
	}
	return l.locateLocked()
}

// Bounds re-reads the cached window's bounds from the OS. If the handle has
// gone stale the cache is dropped and a single re-acquisition is attempted.
func (l *Locator) Bounds() (platform.Bounds, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		b, err := l.wm.WindowBounds(l.cached.Handle)
		if err == nil {
			l.cached.Bounds = b
			return b, nil
		}
		l.cached = nil
	}

	w, err := l.locateLocked()
	if err != nil {
		return platform.Bounds{}, err
	}
	b, err := l.wm.WindowBounds(w.Handle)
	if err != nil {
		l.cached = nil
		return platform.Bounds{}, NotFound("window bounds unavailable: %v", err)
	}
	l.cached.Bounds = b
	return b, nil
}

// Invalidate drops the cached handle so the next call re-acquires it.
func (l *Locator) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}
