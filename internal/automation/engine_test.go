package automation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dawctl/dawctl/internal/platform"
)

func TestEngineClickRecordsAndSettles(t *testing.T) {
	in := &fakeInputter{}
	wm := &fakeWM{windows: testWindows()}
	eng, _ := newTestEngine(t, in, wm, &fakeShot{})

	slept := 0
	eng.opts.ActionDelay = 100 * time.Millisecond
	eng.sleep = func(time.Duration) { slept++ }

	if err := eng.Click(10, 20, platform.MouseLeft); err != nil {
		t.Fatal(err)
	}
	if len(in.calls) != 1 || in.calls[0] != "click" {
		t.Errorf("calls = %v", in.calls)
	}
	if slept != 1 {
		t.Errorf("settle count = %d, want 1", slept)
	}
}

func TestEngineInjectionErrorKind(t *testing.T) {
	in := &fakeInputter{failAt: 1}
	wm := &fakeWM{windows: testWindows()}
	eng, _ := newTestEngine(t, in, wm, &fakeShot{})

	err := eng.Click(10, 20, platform.MouseLeft)
	if KindOf(err) != KindInjection {
		t.Errorf("kind = %q, want injection", KindOf(err))
	}

	in2 := &fakeInputter{failAt: 1}
	eng2, _ := newTestEngine(t, in2, wm, &fakeShot{})
	if KindOf(eng2.Hotkey("ctrl", "s")) != KindInjection {
		t.Error("hotkey fault should map to injection")
	}
}

func TestEngineHotkeyPassesKeys(t *testing.T) {
	in := &fakeInputter{}
	wm := &fakeWM{windows: testWindows()}
	eng, _ := newTestEngine(t, in, wm, &fakeShot{})

	if err := eng.Hotkey("ctrl", "shift", "s"); err != nil {
		t.Fatal(err)
	}
	if in.calls[0] != "combo:ctrl:shift:s" {
		t.Errorf("calls = %v", in.calls)
	}
}

func TestEngineCaptureWindowUsesWindowBounds(t *testing.T) {
	wm := &fakeWM{windows: testWindows()}
	shot := &fakeShot{}
	eng, _ := newTestEngine(t, &fakeInputter{}, wm, shot)

	img, b, err := eng.CaptureWindow()
	if err != nil {
		t.Fatal(err)
	}
	if b.Width != 800 || b.Height != 600 {
		t.Errorf("bounds = %+v", b)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Errorf("image bounds = %v", img.Bounds())
	}
}

func TestEngineSaveDiagnostic(t *testing.T) {
	wm := &fakeWM{windows: testWindows()}
	shot := &fakeShot{}
	eng, _ := newTestEngine(t, &fakeInputter{}, wm, shot)
	eng.now = func() time.Time { return time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC) }

	path, err := eng.SaveDiagnostic(150, 100, "click target")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(path), "diag_") || !strings.HasSuffix(path, ".png") {
		t.Errorf("unexpected diagnostic name %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("diagnostic not written: %v", err)
	}
	if shot.captures != 1 {
		t.Errorf("captures = %d, want 1", shot.captures)
	}
}

func TestEngineCaptureFailureKind(t *testing.T) {
	wm := &fakeWM{windows: testWindows()}
	eng, _ := newTestEngine(t, &fakeInputter{}, wm, &fakeShot{fail: true})

	_, err := eng.CaptureRegion(platform.Bounds{Width: 10, Height: 10})
	if KindOf(err) != KindCapture {
		t.Errorf("kind = %q, want capture", KindOf(err))
	}
}
