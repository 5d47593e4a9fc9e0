package automation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestWorkflows(t *testing.T, in *fakeInputter) (*Workflows, *fakeWM, *fakeShot, *fakeLauncher) {
	wm := &fakeWM{windows: testWindows()}
	shot := &fakeShot{}
	la := &fakeLauncher{}
	eng, _ := newTestEngine(t, in, wm, shot)

	opts := WorkflowOptions{
		ExePath:     `C:\fl\FL.exe`,
		ProcessName: "FL.exe",
		MixerBaseX:  50,
		MixerStride: 60,
		MixerTrackY: 400,
		FaderTop:    320,
		FaderBottom: 500,
		DropX:       400,
		DropY:       300,
	}
	return NewWorkflows(eng, la, opts, nil), wm, shot, la
}

func TestWorkflowStepFailureAbortsAndCapturesOnce(t *testing.T) {
	wf, _, shot, _ := newTestWorkflows(t, &fakeInputter{})

	calls := []string{}
	steps := []step{
		{name: "one", run: func(context.Context) error { calls = append(calls, "one"); return nil }},
		{name: "two", run: func(context.Context) error { calls = append(calls, "two"); return NotFound("boom") }},
		{name: "three", run: func(context.Context) error { calls = append(calls, "three"); return nil }},
	}

	err := wf.runSteps(context.Background(), "test_workflow", steps)
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(calls) != 2 || calls[1] != "two" {
		t.Errorf("executed steps = %v, step three must not run", calls)
	}
	if shot.captures != 1 {
		t.Errorf("diagnostic captures = %d, want exactly 1", shot.captures)
	}
	var f *Failure
	if !errors.As(err, &f) || f.Screenshot == "" {
		t.Errorf("failure should carry the diagnostic path, got %v", err)
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("step failure kind should pass through, got %q", KindOf(err))
	}
}

func TestCreateProjectSequence(t *testing.T) {
	in := &fakeInputter{}
	wf, _, _, _ := newTestWorkflows(t, in)

	if err := wf.CreateProject(context.Background(), "demo"); err != nil {
		t.Fatal(err)
	}
	want := []string{"combo:alt:f", "key:n", "type", "key:enter"}
	if len(in.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", in.calls, want)
	}
	for i := range want {
		if in.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, in.calls[i], want[i])
		}
	}
}

func TestSaveProjectWithAndWithoutPath(t *testing.T) {
	in := &fakeInputter{}
	wf, _, _, _ := newTestWorkflows(t, in)

	if err := wf.SaveProject(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if len(in.calls) != 1 || in.calls[0] != "combo:ctrl:s" {
		t.Errorf("quick save calls = %v", in.calls)
	}

	in.calls = nil
	if err := wf.SaveProject(context.Background(), `C:\songs\demo.flp`); err != nil {
		t.Fatal(err)
	}
	want := []string{"combo:ctrl:s", "type", "key:enter"}
	for i := range want {
		if in.calls[i] != want[i] {
			t.Errorf("save-as call %d = %q, want %q", i, in.calls[i], want[i])
		}
	}
}

func TestAdjustMixerVolumeClampsAndDrags(t *testing.T) {
	in := &fakeInputter{}
	wf, _, _, _ := newTestWorkflows(t, in)

	// Volume above 1 clamps to 1; the workflow is click then drag.
	if err := wf.AdjustMixerVolume(context.Background(), 2, 1.5); err != nil {
		t.Fatal(err)
	}
	if len(in.calls) != 2 || in.calls[0] != "click" || in.calls[1] != "drag" {
		t.Errorf("calls = %v, want [click drag]", in.calls)
	}
}

func TestAdjustMixerVolumeNegativeTrack(t *testing.T) {
	wf, _, _, _ := newTestWorkflows(t, &fakeInputter{})

	err := wf.AdjustMixerVolume(context.Background(), -1, 0.5)
	if KindOf(err) != KindValidation {
		t.Errorf("kind = %q, want validation", KindOf(err))
	}
}

func TestLaunchAppSkipsWhenRunning(t *testing.T) {
	wf, _, _, la := newTestWorkflows(t, &fakeInputter{})
	la.running = true

	if err := wf.LaunchApp(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(la.launched) != 0 {
		t.Errorf("launched = %v, want none", la.launched)
	}
}

func TestLaunchAppStartsAndFindsWindow(t *testing.T) {
	wf, wm, _, la := newTestWorkflows(t, &fakeInputter{})

	if err := wf.LaunchApp(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(la.launched) != 1 {
		t.Fatalf("launched = %v", la.launched)
	}
	if len(wm.focused) == 0 {
		t.Error("window should have been focused after launch")
	}
}

func TestCloseAppInvalidatesWindowCache(t *testing.T) {
	wf, wm, _, la := newTestWorkflows(t, &fakeInputter{})
	la.running = true

	if _, err := wf.eng.loc.Locate(); err != nil {
		t.Fatal(err)
	}
	if err := wf.CloseApp(); err != nil {
		t.Fatal(err)
	}
	if len(la.closed) != 1 || la.closed[0] != "FL.exe" {
		t.Errorf("closed = %v", la.closed)
	}

	// Next lookup must rescan.
	before := wm.listCalls
	if _, err := wf.eng.loc.Current(); err != nil {
		t.Fatal(err)
	}
	if wm.listCalls != before+1 {
		t.Error("cache should have been invalidated on close")
	}
}

func TestPlaybackAndHistoryHotkeys(t *testing.T) {
	in := &fakeInputter{}
	wf, _, _, _ := newTestWorkflows(t, in)
	ctx := context.Background()

	if err := wf.StartPlayback(ctx); err != nil {
		t.Fatal(err)
	}
	if err := wf.StopPlayback(ctx); err != nil {
		t.Fatal(err)
	}
	if err := wf.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if err := wf.Redo(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"key:space", "key:space", "combo:ctrl:z", "combo:ctrl:y"}
	if len(in.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", in.calls, want)
	}
	for i := range want {
		if in.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, in.calls[i], want[i])
		}
	}
}

func TestWorkflowCancelledContext(t *testing.T) {
	wf, _, _, _ := newTestWorkflows(t, &fakeInputter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wf.runSteps(ctx, "cancelled", []step{
		{name: "never", run: func(context.Context) error { t.Error("step ran"); return nil }, wait: time.Millisecond},
	})
	if KindOf(err) != KindTimeout {
		t.Errorf("kind = %q, want timeout", KindOf(err))
	}
}
