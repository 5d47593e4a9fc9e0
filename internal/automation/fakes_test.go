package automation

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/dawctl/dawctl/internal/platform"
)

// fakeInputter records every injected event in order and can be told to fail
// on the nth call.
type fakeInputter struct {
	calls  []string
	failAt int // 1-based call index that errors; 0 means never
	err    error
}

func (f *fakeInputter) record(name string) error {
	f.calls = append(f.calls, name)
	if f.failAt > 0 && len(f.calls) == f.failAt {
		if f.err != nil {
			return f.err
		}
		return errors.New("injected fault")
	}
	return nil
}

func (f *fakeInputter) Click(x, y int, button platform.MouseButton, count int) error {
	return f.record("click")
}
func (f *fakeInputter) MoveMouse(x, y int) error { return f.record("move") }
func (f *fakeInputter) Drag(fromX, fromY, toX, toY int, duration time.Duration) error {
	return f.record("drag")
}
func (f *fakeInputter) TypeText(text string, delay time.Duration) error { return f.record("type") }
func (f *fakeInputter) KeyTap(key string) error                        { return f.record("key:" + key) }
func (f *fakeInputter) KeyCombo(keys []string) error {
	name := "combo"
	for _, k := range keys {
		name += ":" + k
	}
	return f.record(name)
}

// fakeWM serves a fixed window list. Handles present in deadHandles fail
// bounds lookups, simulating a closed window.
type fakeWM struct {
	windows     []platform.WindowInfo
	deadHandles map[uintptr]bool
	focused     []uintptr
	listCalls   int
}

func (f *fakeWM) ListWindows() ([]platform.WindowInfo, error) {
	f.listCalls++
	return f.windows, nil
}

func (f *fakeWM) FocusWindow(handle uintptr) error {
	f.focused = append(f.focused, handle)
	return nil
}

func (f *fakeWM) WindowBounds(handle uintptr) (platform.Bounds, error) {
	if f.deadHandles[handle] {
		return platform.Bounds{}, errors.New("window gone")
	}
	for _, w := range f.windows {
		if w.Handle == handle {
			return w.Bounds, nil
		}
	}
	return platform.Bounds{}, errors.New("unknown handle")
}

// fakeShot returns a solid-color image of the requested size and counts
// captures.
type fakeShot struct {
	captures int
	fail     bool
}

func (f *fakeShot) CaptureRegion(b platform.Bounds) (image.Image, error) {
	f.captures++
	if f.fail {
		return nil, errors.New("capture fault")
	}
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}
	return img, nil
}

type fakeLauncher struct {
	running  bool
	launched []string
	closed   []string
}

func (f *fakeLauncher) Launch(exePath string) (int, error) {
	f.launched = append(f.launched, exePath)
	f.running = true
	return 4242, nil
}

func (f *fakeLauncher) Close(processName string) error {
	f.closed = append(f.closed, processName)
	f.running = false
	return nil
}

func (f *fakeLauncher) IsRunning(processName string) (bool, error) {
	return f.running, nil
}

// newTestEngine wires an Engine over the fakes with sleeps disabled.
func newTestEngine(t interface{ TempDir() string }, in *fakeInputter, wm *fakeWM, shot *fakeShot) (*Engine, *Locator) {
	loc := NewLocator(wm, "fl studio")
	p := &platform.Provider{Inputter: in, WindowManager: wm, Screenshotter: shot, Launcher: &fakeLauncher{}}
	eng := NewEngine(p, loc, Options{ScreenshotDir: t.TempDir()}, nil)
	eng.sleep = func(time.Duration) {}
	return eng, loc
}

func testWindows() []platform.WindowInfo {
	return []platform.WindowInfo{
		{Handle: 1, Title: "Notepad", Bounds: platform.Bounds{X: 0, Y: 0, Width: 300, Height: 200}, Visible: true},
		{Handle: 2, Title: "FL Studio 21 - Untitled", Bounds: platform.Bounds{X: 100, Y: 50, Width: 800, Height: 600}, Visible: true},
	}
}
