package automation

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dawctl/dawctl/internal/platform"
)

// Options tunes the engine's pacing and diagnostics.
type Options struct {
	// ActionDelay is the settle pause after each injected action, giving
	// the target application time to render before the next one.
	ActionDelay time.Duration
	// TypeDelay is the inter-character delay for TypeText.
	TypeDelay time.Duration
	// ScreenshotDir receives diagnostic captures.
	ScreenshotDir string
}

// Engine exposes the atomic automation primitives. Every method is a
// synchronous call into the OS input/graphics subsystem and carries no
// retry; WithRetry layers that on where it is safe.
type Engine struct {
	in    platform.Inputter
	shot  platform.Screenshotter
	loc   *Locator
	opts  Options
	log   *slog.Logger
	sleep func(time.Duration)
	now   func() time.Time
}

// NewEngine builds an Engine over the platform backends.
func NewEngine(p *platform.Provider, loc *Locator, opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		in:    p.Inputter,
		shot:  p.Screenshotter,
		loc:   loc,
		opts:  opts,
		log:   log,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Locator returns the engine's window locator.
func (e *Engine) Locator() *Locator {
	return e.loc
}

// ScreenshotDir returns the configured diagnostic screenshot directory.
func (e *Engine) ScreenshotDir() string {
	return e.opts.ScreenshotDir
}

func (e *Engine) settle() {
	if e.opts.ActionDelay > 0 {
		e.sleep(e.opts.ActionDelay)
	}
}

// Click clicks at screen-absolute coordinates.
func (e *Engine) Click(x, y int, button platform.MouseButton) error {
	if err := e.in.Click(x, y, button, 1); err != nil {
		return Injection(err, "click at (%d, %d) with %s button", x, y, button)
	}
	e.log.Debug("clicked", "x", x, "y", y, "button", button.String())
	e.settle()
	return nil
}

// DoubleClick double-clicks at screen-absolute coordinates.
func (e *Engine) DoubleClick(x, y int) error {
	if err := e.in.Click(x, y, platform.MouseLeft, 2); err != nil {
		return Injection(err, "double-click at (%d, %d)", x, y)
	}
	e.settle()
	return nil
}

// MoveMouse moves the pointer without clicking.
func (e *Engine) MoveMouse(x, y int) error {
	if err := e.in.MoveMouse(x, y); err != nil {
		return Injection(err, "move mouse to (%d, %d)", x, y)
	}
	return nil
}

// Drag presses at (x, y) and releases at (x+dx, y+dy) over duration.
func (e *Engine) Drag(x, y, dx, dy int, duration time.Duration) error {
	if err := e.in.Drag(x, y, x+dx, y+dy, duration); err != nil {
		return Injection(err, "drag from (%d, %d) by (%d, %d)", x, y, dx, dy)
	}
	e.log.Debug("dragged", "from_x", x, "from_y", y, "dx", dx, "dy", dy)
	e.settle()
	return nil
}

// KeyTap presses and releases a single key.
func (e *Engine) KeyTap(key string) error {
	if err := e.in.KeyTap(key); err != nil {
		return Injection(err, "key tap %q", key)
	}
	e.log.Debug("key tapped", "key", key)
	e.settle()
	return nil
}

// Hotkey presses modifier keys plus a key simultaneously.
func (e *Engine) Hotkey(keys ...string) error {
	if err := e.in.KeyCombo(keys); err != nil {
		return Injection(err, "hotkey %v", keys)
	}
	e.log.Debug("hotkey pressed", "keys", keys)
	e.settle()
	return nil
}

// TypeText emits text character by character with the configured
// inter-character delay. delay overrides the engine default when > 0.
func (e *Engine) TypeText(text string, delay time.Duration) error {
	if delay <= 0 {
		delay = e.opts.TypeDelay
	}
	if err := e.in.TypeText(text, delay); err != nil {
		return Injection(err, "type %d characters", len(text))
	}
	e.log.Debug("typed text", "chars", len(text))
	e.settle()
	return nil
}

// CaptureRegion grabs a screen region as an image.
func (e *Engine) CaptureRegion(b platform.Bounds) (image.Image, error) {
	img, err := e.shot.CaptureRegion(b)
	if err != nil {
		return nil, Capture(err, "capture region (%d, %d, %d, %d)", b.X, b.Y, b.Width, b.Height)
	}
	return img, nil
}

// CaptureWindow captures the full target window.
func (e *Engine) CaptureWindow() (image.Image, platform.Bounds, error) {
	b, err := e.loc.Bounds()
	if err != nil {
		return nil, platform.Bounds{}, err
	}
	img, err := e.CaptureRegion(b)
	if err != nil {
		return nil, b, err
	}
	return img, b, nil
}

// SaveDiagnostic captures the full window, draws a marker at the given
// screen coordinates with a short label, and writes a timestamped PNG to
// the screenshot directory. Marker coordinates of (0, 0) with an empty
// label skip annotation.
func (e *Engine) SaveDiagnostic(markX, markY int, label string) (string, error) {
	img, b, err := e.CaptureWindow()
	if err != nil {
		return "", err
	}
	if label != "" {
		relX, relY := ToWindow(b, markX, markY)
		img = MarkPoint(img, relX, relY, label)
	}

	if err := os.MkdirAll(e.opts.ScreenshotDir, 0o755); err != nil {
		return "", Capture(err, "create screenshot dir %s", e.opts.ScreenshotDir)
	}
	path := filepath.Join(e.opts.ScreenshotDir, fmt.Sprintf("diag_%s.png", e.now().Format("20060102_150405.000")))
	f, err := os.Create(path)
	if err != nil {
		return "", Capture(err, "create %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", Capture(err, "encode %s", path)
	}
	e.log.Info("diagnostic screenshot saved", "path", path)
	return path, nil
}
