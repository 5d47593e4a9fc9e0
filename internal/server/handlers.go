package server

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/dawctl/dawctl/internal/automation"
	"github.com/dawctl/dawctl/internal/platform"
)

// resolvePoint maps tool-call coordinates to screen space. Coordinates are
// window-relative unless the call sets absolute, so callers can address UI
// features without knowing where the window sits.
func (s *Server) resolvePoint(args map[string]interface{}, x, y int) (int, int, error) {
	if boolArg(args, "absolute", false) {
		return x, y, nil
	}
	return s.eng.Translate(x, y)
}

func (s *Server) handleLaunch(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	if err := s.wf.LaunchApp(ctx); err != nil {
		return nil, err
	}
	w, err := s.eng.Locator().Current()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"window": w.Title}, nil
}

func (s *Server) handleClose(_ context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, s.wf.CloseApp()
}

func (s *Server) handleFocusWindow(_ context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	s.eng.Locator().Invalidate()
	w, err := s.eng.Locator().Locate()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"window": w.Title,
		"bounds": fmt.Sprintf("%d,%d,%d,%d", w.Bounds.X, w.Bounds.Y, w.Bounds.Width, w.Bounds.Height),
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	windows, err := s.provider.WindowManager.ListWindows()
	if err != nil {
		return nil, automation.NotFound("window scan failed: %v", err)
	}
	entries := make([]map[string]interface{}, 0, len(windows))
	for _, w := range windows {
		entries = append(entries, map[string]interface{}{
			"title":     w.Title,
			"pid":       w.PID,
			"visible":   w.Visible,
			"minimized": w.Minimized,
		})
	}
	return map[string]interface{}{"windows": entries}, nil
}

func (s *Server) handleClick(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	x, err := requireCoord(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := requireCoord(args, "y")
	if err != nil {
		return nil, err
	}
	button, err := platform.ParseMouseButton(stringArg(args, "button", "left"))
	if err != nil {
		return nil, automation.Validation("%v", err)
	}
	double := boolArg(args, "double", false)

	absX, absY, err := s.resolvePoint(args, x, y)
	if err != nil {
		return nil, err
	}
	if double {
		err = s.eng.DoubleClick(absX, absY)
	} else {
		err = s.eng.Click(absX, absY, button)
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"x": absX, "y": absY}, nil
}

func (s *Server) handleDrag(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	x, err := requireCoord(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := requireCoord(args, "y")
	if err != nil {
		return nil, err
	}
	dx, err := requireInt(args, "dx")
	if err != nil {
		return nil, err
	}
	dy, err := requireInt(args, "dy")
	if err != nil {
		return nil, err
	}
	durationMs := intArg(args, "duration", 500)
	if durationMs < 0 {
		return nil, automation.Validation("parameter \"duration\" must be >= 0, got %d", durationMs)
	}

	absX, absY, err := s.resolvePoint(args, x, y)
	if err != nil {
		return nil, err
	}
	if err := s.eng.Drag(absX, absY, dx, dy, time.Duration(durationMs)*time.Millisecond); err != nil {
		return nil, err
	}
	return map[string]interface{}{"from_x": absX, "from_y": absY, "to_x": absX + dx, "to_y": absY + dy}, nil
}

func (s *Server) handleMoveMouse(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	x, err := requireCoord(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := requireCoord(args, "y")
	if err != nil {
		return nil, err
	}
	absX, absY, err := s.resolvePoint(args, x, y)
	if err != nil {
		return nil, err
	}
	return nil, s.eng.MoveMouse(absX, absY)
}

func (s *Server) handleKey(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	key, err := requireString(args, "key")
	if err != nil {
		return nil, err
	}
	return nil, s.eng.KeyTap(key)
}

func (s *Server) handleHotkey(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	combo, err := requireString(args, "keys")
	if err != nil {
		return nil, err
	}
	keys, err := parseKeyCombo(combo)
	if err != nil {
		return nil, err
	}
	return nil, s.eng.Hotkey(keys...)
}

func (s *Server) handleTypeText(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	text, err := requireString(args, "text")
	if err != nil {
		return nil, err
	}
	delayMs := intArg(args, "delay", 0)
	if delayMs < 0 {
		return nil, automation.Validation("parameter \"delay\" must be >= 0, got %d", delayMs)
	}
	if err := s.eng.TypeText(text, time.Duration(delayMs)*time.Millisecond); err != nil {
		return nil, err
	}
	return map[string]interface{}{"chars": len(text)}, nil
}

func (s *Server) handleScreenshot(_ context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	scale := floatArg(args, "scale", 1)
	if scale <= 0 || scale > 1 {
		return nil, automation.Validation("parameter \"scale\" must be in (0, 1], got %v", scale)
	}

	var region *platform.Bounds
	if bbox := stringArg(args, "region", ""); bbox != "" {
		b, err := platform.ParseBBox(bbox)
		if err != nil {
			return nil, automation.Validation("%v", err)
		}
		region = b
	}

	var (
		img image.Image
		err error
	)
	if region != nil {
		img, err = s.eng.CaptureRegion(*region)
	} else {
		img, _, err = s.eng.CaptureWindow()
	}
	if err != nil {
		return nil, err
	}

	out := automation.ScaleImage(img, scale)

	path := stringArg(args, "output", "")
	if path == "" {
		if err := os.MkdirAll(s.eng.ScreenshotDir(), 0o755); err != nil {
			return nil, automation.Capture(err, "create screenshot dir %s", s.eng.ScreenshotDir())
		}
		path = filepath.Join(s.eng.ScreenshotDir(), fmt.Sprintf("shot_%s.png", time.Now().Format("20060102_150405.000")))
	}
	if err := automation.SavePNG(path, out); err != nil {
		return nil, automation.Capture(err, "write %s", path)
	}

	b := out.Bounds()
	return map[string]interface{}{"path": path, "width": b.Dx(), "height": b.Dy()}, nil
}

// locateImage validates the shared find arguments and runs the matcher
// under the find retry policy, so a transient render delay does not fail
// the call and the final failure carries a diagnostic screenshot.
func (s *Server) locateImage(ctx context.Context, args map[string]interface{}) (x, y int, confidence float64, err error) {
	refPath, err := requireString(args, "path")
	if err != nil {
		return 0, 0, 0, err
	}
	threshold := floatArg(args, "threshold", 0)
	if threshold < 0 || threshold > 1 {
		return 0, 0, 0, automation.Validation("parameter \"threshold\" must be in [0, 1], got %v", threshold)
	}

	var region *platform.Bounds
	if bbox := stringArg(args, "region", ""); bbox != "" {
		b, err := platform.ParseBBox(bbox)
		if err != nil {
			return 0, 0, 0, automation.Validation("%v", err)
		}
		region = b
	}

	err = s.eng.RetryWithDiagnostic(ctx, s.findPolicy, func(context.Context) error {
		var ferr error
		x, y, confidence, ferr = s.matcher.FindOnScreen(refPath, threshold, region)
		return ferr
	})
	return x, y, confidence, err
}

func (s *Server) handleFindImage(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	x, y, confidence, err := s.locateImage(ctx, args)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"x": x, "y": y, "confidence": confidence}, nil
}

func (s *Server) handleClickImage(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	button, err := platform.ParseMouseButton(stringArg(args, "button", "left"))
	if err != nil {
		return nil, automation.Validation("%v", err)
	}
	x, y, confidence, err := s.locateImage(ctx, args)
	if err != nil {
		return nil, err
	}
	if err := s.eng.Click(x, y, button); err != nil {
		return nil, err
	}
	return map[string]interface{}{"x": x, "y": y, "confidence": confidence}, nil
}

func (s *Server) handleCreateProject(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	if err := s.wf.CreateProject(ctx, name); err != nil {
		return nil, err
	}
	return map[string]interface{}{"name": name}, nil
}

func (s *Server) handleSaveProject(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	path := stringArg(args, "path", "")
	if err := s.wf.SaveProject(ctx, path); err != nil {
		return nil, err
	}
	data := map[string]interface{}{}
	if path != "" {
		data["path"] = path
	}
	return data, nil
}

func (s *Server) handleAdjustMixerVolume(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	track, err := requireInt(args, "track")
	if err != nil {
		return nil, err
	}
	if track < 0 {
		return nil, automation.Validation("parameter \"track\" must be >= 0, got %d", track)
	}
	volume, err := requireFloat(args, "volume")
	if err != nil {
		return nil, err
	}
	if volume < 0 || volume > 1 {
		return nil, automation.Validation("parameter \"volume\" must be in [0, 1], got %v", volume)
	}
	if err := s.wf.AdjustMixerVolume(ctx, track, volume); err != nil {
		return nil, err
	}
	return map[string]interface{}{"track": track, "volume": volume}, nil
}

func (s *Server) handleImportMIDI(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	path, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}
	if err := s.wf.ImportMIDI(ctx, path); err != nil {
		return nil, err
	}
	return map[string]interface{}{"path": path}, nil
}

func (s *Server) handleStartPlayback(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, s.wf.StartPlayback(ctx)
}

func (s *Server) handleStopPlayback(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, s.wf.StopPlayback(ctx)
}

func (s *Server) handleUndo(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, s.wf.Undo(ctx)
}

func (s *Server) handleRedo(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, s.wf.Redo(ctx)
}

func (s *Server) handleConvertAudio(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	audioPath, err := requireString(args, "audio")
	if err != nil {
		return nil, err
	}
	if s.conv == nil {
		return nil, automation.Validation("audio conversion is not configured")
	}
	outDir := stringArg(args, "output_dir", "")
	midiPath, err := s.conv.Convert(ctx, audioPath, outDir)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"midi": midiPath}, nil
}
