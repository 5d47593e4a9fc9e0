package automation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dawctl/dawctl/internal/platform"
)

// WorkflowOptions carries the target-application knobs workflows need.
// All coordinate values are window-relative; translation to screen
// coordinates happens per-step against freshly-read window bounds.
type WorkflowOptions struct {
	ExePath     string
	ProcessName string
	// LaunchWait is how long to allow the application to start before the
	// window lookup begins retrying.
	LaunchWait time.Duration

	// Mixer geometry: track index i sits at (MixerBaseX + i*MixerStrideX,
	// MixerTrackY); its fader spans FaderTop..FaderBottom vertically.
	MixerBaseX  int
	MixerStride int
	MixerTrackY int
	FaderTop    int
	FaderBottom int

	// DropX, DropY is where imported clips are placed in the playlist.
	DropX int
	DropY int
}

// Workflows are composite operations built from ordered primitive sequences
// with interleaved verification waits. A step's failure aborts the rest and
// surfaces the first Failure with a single diagnostic screenshot; there is
// no rollback, because the target application has no transactional
// semantics to roll back against.
type Workflows struct {
	eng  *Engine
	la   platform.Launcher
	opts WorkflowOptions
	log  *slog.Logger
}

// NewWorkflows builds the workflow layer over an engine and launcher.
func NewWorkflows(eng *Engine, la platform.Launcher, opts WorkflowOptions, log *slog.Logger) *Workflows {
	if log == nil {
		log = slog.Default()
	}
	return &Workflows{eng: eng, la: la, opts: opts, log: log}
}

// ProcessRunning reports whether the target application process is alive.
func (w *Workflows) ProcessRunning() (bool, error) {
	return w.la.IsRunning(w.opts.ProcessName)
}

type step struct {
	name string
	run  func(ctx context.Context) error
	// wait pauses after the step so the target application can render.
	wait time.Duration
}

func (w *Workflows) runSteps(ctx context.Context, action string, steps []step) error {
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return Timeout(err, "%s cancelled before step %q", action, st.name)
		}
		if err := st.run(ctx); err != nil {
			w.log.Error("workflow step failed", "workflow", action, "step", st.name, "error", err)
			if path, capErr := w.eng.SaveDiagnostic(0, 0, ""); capErr == nil {
				return AttachScreenshot(err, path)
			}
			return err
		}
		if st.wait > 0 {
			w.eng.sleep(st.wait)
		}
	}
	w.log.Info("workflow completed", "workflow", action)
	return nil
}

// LaunchApp starts the target application unless it is already running,
// then waits for its window to appear.
func (w *Workflows) LaunchApp(ctx context.Context) error {
	running, err := w.la.IsRunning(w.opts.ProcessName)
	if err != nil {
		return NotFound("cannot check whether %s is running: %v", w.opts.ProcessName, err)
	}
	if !running {
		pid, err := w.la.Launch(w.opts.ExePath)
		if err != nil {
			return NotFound("launch %s: %v", w.opts.ExePath, err)
		}
		w.log.Info("launched target application", "exe", w.opts.ExePath, "pid", pid)
		w.eng.sleep(w.opts.LaunchWait)
	}

	return WithRetry(ctx, DefaultPolicy(), func(context.Context) error {
		_, err := w.eng.loc.Locate()
		return err
	})
}

// CloseApp terminates the target application.
func (w *Workflows) CloseApp() error {
	if err := w.la.Close(w.opts.ProcessName); err != nil {
		return NotFound("close %s: %v", w.opts.ProcessName, err)
	}
	w.eng.loc.Invalidate()
	return nil
}

// CreateProject creates a new named project: File menu, New, type the name,
// confirm. The waits mirror the dialog render times the target application
// needs; there is no completion signal to poll instead.
func (w *Workflows) CreateProject(ctx context.Context, name string) error {
	return w.runSteps(ctx, "create_project", []step{
		{name: "open file menu", run: func(context.Context) error { return w.eng.Hotkey("alt", "f") }, wait: 500 * time.Millisecond},
		{name: "choose new", run: func(context.Context) error { return w.eng.KeyTap("n") }, wait: time.Second},
		{name: "type project name", run: func(context.Context) error { return w.eng.TypeText(name, 0) }, wait: 300 * time.Millisecond},
		{name: "confirm", run: func(context.Context) error { return w.eng.KeyTap("enter") }, wait: 2 * time.Second},
	})
}

// SaveProject saves the current project; a non-empty path goes through the
// save-as dialog.
func (w *Workflows) SaveProject(ctx context.Context, path string) error {
	steps := []step{
		{name: "save hotkey", run: func(context.Context) error { return w.eng.Hotkey("ctrl", "s") }, wait: 2 * time.Second},
	}
	if path != "" {
		steps = append(steps,
			step{name: "type save path", run: func(context.Context) error { return w.eng.TypeText(path, 0) }},
			step{name: "confirm save", run: func(context.Context) error { return w.eng.KeyTap("enter") }, wait: 2 * time.Second},
		)
	}
	return w.runSteps(ctx, "save_project", steps)
}

// AdjustMixerVolume sets a mixer track's fader. volume is clamped to [0,1];
// 0 is the fader bottom, 1 the top.
func (w *Workflows) AdjustMixerVolume(ctx context.Context, track int, volume float64) error {
	if track < 0 {
		return Validation("track index must be >= 0, got %d", track)
	}
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}

	relX := w.opts.MixerBaseX + track*w.opts.MixerStride
	faderSpan := w.opts.FaderBottom - w.opts.FaderTop
	targetRelY := w.opts.FaderBottom - int(volume*float64(faderSpan))

	return w.runSteps(ctx, "adjust_mixer_volume", []step{
		{
			name: "select track",
			run: func(context.Context) error {
				x, y, err := w.eng.Translate(relX, w.opts.MixerTrackY)
				if err != nil {
					return err
				}
				return w.eng.Click(x, y, platform.MouseLeft)
			},
			wait: 300 * time.Millisecond,
		},
		{
			name: "drag fader",
			run: func(context.Context) error {
				// Bounds are re-read here rather than reused from the click:
				// the window may have moved in between.
				x, y, err := w.eng.Translate(relX, w.opts.MixerTrackY)
				if err != nil {
					return err
				}
				return w.eng.Drag(x, y, 0, targetRelY-w.opts.MixerTrackY, 500*time.Millisecond)
			},
		},
	})
}

// ImportMIDI opens the import dialog, types the file path, and places the
// clip at the configured playlist drop position.
func (w *Workflows) ImportMIDI(ctx context.Context, midiPath string) error {
	return w.runSteps(ctx, "import_midi", []step{
		{name: "open import dialog", run: func(context.Context) error { return w.eng.Hotkey("ctrl", "o") }, wait: time.Second},
		{name: "type midi path", run: func(context.Context) error { return w.eng.TypeText(midiPath, 0) }, wait: 300 * time.Millisecond},
		{name: "confirm import", run: func(context.Context) error { return w.eng.KeyTap("enter") }, wait: 2 * time.Second},
		{
			name: "place clip",
			run: func(context.Context) error {
				x, y, err := w.eng.Translate(w.opts.DropX, w.opts.DropY)
				if err != nil {
					return err
				}
				return w.eng.Click(x, y, platform.MouseLeft)
			},
		},
	})
}

// StartPlayback toggles playback on.
func (w *Workflows) StartPlayback(ctx context.Context) error {
	return w.runSteps(ctx, "start_playback", []step{
		{name: "press space", run: func(context.Context) error { return w.eng.KeyTap("space") }},
	})
}

// StopPlayback toggles playback off. The target application uses the same
// key for both; the distinction exists only for callers' intent.
func (w *Workflows) StopPlayback(ctx context.Context) error {
	return w.runSteps(ctx, "stop_playback", []step{
		{name: "press space", run: func(context.Context) error { return w.eng.KeyTap("space") }},
	})
}

// Undo reverts the last action.
func (w *Workflows) Undo(ctx context.Context) error {
	return w.runSteps(ctx, "undo", []step{
		{name: "undo hotkey", run: func(context.Context) error { return w.eng.Hotkey("ctrl", "z") }},
	})
}

// Redo re-applies the last undone action.
func (w *Workflows) Redo(ctx context.Context) error {
	return w.runSteps(ctx, "redo", []step{
		{name: "redo hotkey", run: func(context.Context) error { return w.eng.Hotkey("ctrl", "y") }},
	})
}

// Describe returns a short human description of the workflow layer's
// target, for logs and status output.
func (w *Workflows) Describe() string {
	return fmt.Sprintf("%s (%s)", w.opts.ProcessName, w.opts.ExePath)
}
