package server

import (
	"context"
	"image"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dawctl/dawctl/internal/automation"
	"github.com/dawctl/dawctl/internal/platform"
)

type recordingInputter struct {
	calls []string
}

func (r *recordingInputter) record(name string) error {
	r.calls = append(r.calls, name)
	return nil
}

func (r *recordingInputter) Click(x, y int, button platform.MouseButton, count int) error {
	return r.record("click")
}
func (r *recordingInputter) MoveMouse(x, y int) error { return r.record("move") }
func (r *recordingInputter) Drag(fromX, fromY, toX, toY int, duration time.Duration) error {
	return r.record("drag")
}
func (r *recordingInputter) TypeText(text string, delay time.Duration) error {
	return r.record("type")
}
func (r *recordingInputter) KeyTap(key string) error { return r.record("key:" + key) }
func (r *recordingInputter) KeyCombo(keys []string) error {
	return r.record("combo:" + strings.Join(keys, "+"))
}

type stubWM struct{}

func (stubWM) ListWindows() ([]platform.WindowInfo, error) {
	return []platform.WindowInfo{
		{Handle: 7, Title: "FL Studio 21 - Untitled", Bounds: platform.Bounds{X: 100, Y: 50, Width: 800, Height: 600}, PID: 99, Visible: true},
	}, nil
}
func (stubWM) FocusWindow(handle uintptr) error { return nil }
func (stubWM) WindowBounds(handle uintptr) (platform.Bounds, error) {
	return platform.Bounds{X: 100, Y: 50, Width: 800, Height: 600}, nil
}

type stubShot struct{}

func (stubShot) CaptureRegion(b platform.Bounds) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, b.Width, b.Height)), nil
}

// countingShot tracks how many captures a dispatch path performs.
type countingShot struct {
	captures int
}

func (c *countingShot) CaptureRegion(b platform.Bounds) (image.Image, error) {
	c.captures++
	return image.NewRGBA(image.Rect(0, 0, b.Width, b.Height)), nil
}

type stubLauncher struct{}

func (stubLauncher) Launch(string) (int, error)     { return 1, nil }
func (stubLauncher) Close(string) error             { return nil }
func (stubLauncher) IsRunning(string) (bool, error) { return true, nil }

// fastFindRetry keeps matcher-backed dispatch tests quick.
func fastFindRetry() automation.Policy {
	return automation.Policy{MaxAttempts: 2, InitialDelay: time.Millisecond, BackoffMultiplier: 2}
}

func newTestServer(t *testing.T) (*Server, *recordingInputter) {
	in := &recordingInputter{}
	p := &platform.Provider{
		Inputter:      in,
		WindowManager: stubWM{},
		Screenshotter: stubShot{},
		Launcher:      stubLauncher{},
	}
	loc := automation.NewLocator(p.WindowManager, "fl studio")
	eng := automation.NewEngine(p, loc, automation.Options{ScreenshotDir: t.TempDir()}, nil)

	wf := automation.NewWorkflows(eng, p.Launcher, automation.WorkflowOptions{
		ProcessName: "FL.exe",
		MixerBaseX:  50, MixerStride: 60, MixerTrackY: 400,
		FaderTop: 320, FaderBottom: 500,
	}, nil)

	s := New(Deps{
		Provider:  p,
		Engine:    eng,
		Workflows: wf,
		Matcher:   automation.NewMatcher(eng, 0.8),
	}, Config{FindRetry: fastFindRetry()})
	return s, in
}

func TestRegisteredToolsComplete(t *testing.T) {
	s, _ := newTestServer(t)

	descs := s.Descriptors()
	if len(descs) == 0 {
		t.Fatal("no tools registered")
	}

	byName := map[string]bool{}
	for _, d := range descs {
		byName[d.Name] = true
		if d.Description == "" {
			t.Errorf("tool %s has no description", d.Name)
		}
		if _, ok := s.handlers[d.Name]; !ok {
			t.Errorf("tool %s advertised but not dispatchable", d.Name)
		}
	}
	for _, want := range []string{
		"launch", "close", "focus_window", "list_windows",
		"click", "drag", "move_mouse", "key", "hotkey", "type_text",
		"screenshot", "find_image", "click_image",
		"create_project", "save_project", "adjust_mixer_volume", "import_midi",
		"start_playback", "stop_playback", "undo", "redo",
		"convert_audio",
	} {
		if !byName[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
	if len(s.handlers) != len(descs) {
		t.Errorf("handlers (%d) and descriptors (%d) out of sync", len(s.handlers), len(descs))
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	s, _ := newTestServer(t)
	res := s.Dispatch(context.Background(), "no_such_tool", nil)
	if res.OK {
		t.Error("unknown tool should fail")
	}
	if res.Kind != string(automation.KindValidation) {
		t.Errorf("kind = %q, want validation", res.Kind)
	}
}

func TestClickValidationBeforeBackend(t *testing.T) {
	s, in := newTestServer(t)

	res := s.Dispatch(context.Background(), "click", map[string]interface{}{"x": -1.0, "y": 10.0})
	if res.OK {
		t.Fatal("negative coordinate should fail validation")
	}
	if res.Kind != string(automation.KindValidation) {
		t.Errorf("kind = %q, want validation", res.Kind)
	}
	if len(in.calls) != 0 {
		t.Errorf("backend calls = %v, want none for invalid request", in.calls)
	}
}

func TestClickTranslatesWindowRelative(t *testing.T) {
	s, in := newTestServer(t)

	res := s.Dispatch(context.Background(), "click", map[string]interface{}{"x": 10.0, "y": 20.0})
	if !res.OK {
		t.Fatalf("click failed: %s", res.Error)
	}
	if len(in.calls) != 1 || in.calls[0] != "click" {
		t.Errorf("calls = %v", in.calls)
	}
	// Window sits at (100, 50).
	if res.Data["x"] != 110 || res.Data["y"] != 70 {
		t.Errorf("translated point = %v, %v, want 110, 70", res.Data["x"], res.Data["y"])
	}
}

func TestClickAbsoluteBypassesTranslation(t *testing.T) {
	s, _ := newTestServer(t)

	res := s.Dispatch(context.Background(), "click", map[string]interface{}{
		"x": 10.0, "y": 20.0, "absolute": true,
	})
	if !res.OK {
		t.Fatalf("click failed: %s", res.Error)
	}
	if res.Data["x"] != 10 || res.Data["y"] != 20 {
		t.Errorf("point = %v, %v, want untranslated 10, 20", res.Data["x"], res.Data["y"])
	}
}

func TestHotkeyDispatch(t *testing.T) {
	s, in := newTestServer(t)

	res := s.Dispatch(context.Background(), "hotkey", map[string]interface{}{"keys": "Ctrl+Shift+S"})
	if !res.OK {
		t.Fatalf("hotkey failed: %s", res.Error)
	}
	if len(in.calls) != 1 || in.calls[0] != "combo:ctrl+shift+s" {
		t.Errorf("calls = %v", in.calls)
	}
}

func TestHotkeyInvalidCombo(t *testing.T) {
	s, in := newTestServer(t)
	res := s.Dispatch(context.Background(), "hotkey", map[string]interface{}{"keys": "ctrl++s"})
	if res.OK || res.Kind != string(automation.KindValidation) {
		t.Errorf("result = %+v, want validation failure", res)
	}
	if len(in.calls) != 0 {
		t.Errorf("backend calls = %v", in.calls)
	}
}

func TestTypeTextRequiresText(t *testing.T) {
	s, _ := newTestServer(t)
	res := s.Dispatch(context.Background(), "type_text", nil)
	if res.OK || res.Kind != string(automation.KindValidation) {
		t.Errorf("result = %+v, want validation failure", res)
	}
}

func TestAdjustMixerVolumeRange(t *testing.T) {
	s, in := newTestServer(t)
	res := s.Dispatch(context.Background(), "adjust_mixer_volume", map[string]interface{}{
		"track": 1.0, "volume": 1.5,
	})
	if res.OK || res.Kind != string(automation.KindValidation) {
		t.Errorf("result = %+v, want validation failure", res)
	}
	if len(in.calls) != 0 {
		t.Errorf("backend calls = %v", in.calls)
	}
}

func TestFindImageThresholdRange(t *testing.T) {
	s, _ := newTestServer(t)
	res := s.Dispatch(context.Background(), "find_image", map[string]interface{}{
		"path": "ref.png", "threshold": 2.0,
	})
	if res.OK || res.Kind != string(automation.KindValidation) {
		t.Errorf("result = %+v, want validation failure", res)
	}
}

func TestConvertAudioUnconfigured(t *testing.T) {
	s, _ := newTestServer(t)
	res := s.Dispatch(context.Background(), "convert_audio", map[string]interface{}{"audio": "x.wav"})
	if res.OK {
		t.Error("convert_audio without a converter should fail")
	}
}

func TestResultToText(t *testing.T) {
	text := resultToText(Result{OK: true, Action: "click", Data: map[string]interface{}{"x": 1}})
	if !strings.Contains(text, "ok: true") || !strings.Contains(text, "action: click") {
		t.Errorf("unexpected yaml: %q", text)
	}

	text = resultToText(Result{Action: "click", Error: "boom", Kind: "not_found"})
	if !strings.Contains(text, "error: boom") || !strings.Contains(text, "kind: not_found") {
		t.Errorf("unexpected yaml: %q", text)
	}
}

func TestServeRejectsUnknownTransport(t *testing.T) {
	s, _ := newTestServer(t)
	err := s.Serve(Config{Transport: "carrier-pigeon"})
	if err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Errorf("err = %v", err)
	}
}

func TestDispatchFailureCarriesKind(t *testing.T) {
	s, _ := newTestServer(t)
	// find_image with a nonexistent reference fails every attempt; the
	// exhausted retry surfaces as a timeout with a diagnostic screenshot.
	res := s.Dispatch(context.Background(), "find_image", map[string]interface{}{"path": "/does/not/exist.png"})
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Kind != string(automation.KindTimeout) {
		t.Errorf("kind = %q, want timeout", res.Kind)
	}
	if res.Screenshot == "" {
		t.Error("failure should carry a diagnostic screenshot path")
	}
}

func TestFindImageRetriesWithDiagnostic(t *testing.T) {
	in := &recordingInputter{}
	shot := &countingShot{}
	p := &platform.Provider{
		Inputter:      in,
		WindowManager: stubWM{},
		Screenshotter: shot,
		Launcher:      stubLauncher{},
	}
	loc := automation.NewLocator(p.WindowManager, "fl studio")
	eng := automation.NewEngine(p, loc, automation.Options{ScreenshotDir: t.TempDir()}, nil)
	s := New(Deps{
		Provider:  p,
		Engine:    eng,
		Workflows: automation.NewWorkflows(eng, p.Launcher, automation.WorkflowOptions{}, nil),
		Matcher:   automation.NewMatcher(eng, 0.8),
	}, Config{FindRetry: fastFindRetry()})

	// A white reference never matches the black stub screen.
	ref := filepath.Join(t.TempDir(), "ref.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	if err := automation.SavePNG(ref, img); err != nil {
		t.Fatal(err)
	}

	res := s.Dispatch(context.Background(), "find_image", map[string]interface{}{"path": ref})
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Kind != string(automation.KindTimeout) {
		t.Errorf("kind = %q, want timeout after exhausted retries", res.Kind)
	}
	if res.Screenshot == "" {
		t.Error("final failure should carry a diagnostic screenshot")
	}
	// One capture per attempt plus the diagnostic.
	if shot.captures != 3 {
		t.Errorf("captures = %d, want 3", shot.captures)
	}
}

func TestClickImageFindsAndClicks(t *testing.T) {
	s, in := newTestServer(t)

	// A black reference matches the black stub screen at the origin.
	ref := filepath.Join(t.TempDir(), "ref.png")
	if err := automation.SavePNG(ref, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatal(err)
	}

	res := s.Dispatch(context.Background(), "click_image", map[string]interface{}{"path": ref, "threshold": 0.9})
	if !res.OK {
		t.Fatalf("click_image failed: %s", res.Error)
	}
	if len(in.calls) != 1 || in.calls[0] != "click" {
		t.Errorf("calls = %v, want a single click", in.calls)
	}
	// Match center: window origin (100, 50) plus half the 10px reference.
	if res.Data["x"] != 105 || res.Data["y"] != 55 {
		t.Errorf("click point = %v, %v, want 105, 55", res.Data["x"], res.Data["y"])
	}
}

func TestStatusResource(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.readStatus(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	if !strings.Contains(text, `"running":true`) || !strings.Contains(text, "FL Studio 21") {
		t.Errorf("status = %s", text)
	}
}

func TestCapabilitiesResource(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.readCapabilities(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	for _, tool := range []string{"click_image", "find_image", "create_project"} {
		if !strings.Contains(text, tool) {
			t.Errorf("capabilities missing %s", tool)
		}
	}
}
