package midi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dawctl/dawctl/internal/execx"
)

// Basic Pitch detection thresholds. Onset and frame are model activation
// cutoffs; the minimum note length discards transcription noise shorter
// than a 32nd note at 117 BPM.
const (
	DefaultOnsetThreshold = 0.5
	DefaultFrameThreshold = 0.3
	DefaultMinNoteLenMs   = 127.70
)

// Converter transcribes audio files to MIDI through the Basic Pitch CLI.
type Converter struct {
	runner *execx.Runner
	// OutputDir receives MIDI files when the caller does not pick a
	// directory.
	OutputDir string

	OnsetThreshold float64
	FrameThreshold float64
	MinNoteLenMs   float64
}

// NewConverter creates a Converter with default detection thresholds.
func NewConverter(runner *execx.Runner, outputDir string) *Converter {
	return &Converter{
		runner:         runner,
		OutputDir:      outputDir,
		OnsetThreshold: DefaultOnsetThreshold,
		FrameThreshold: DefaultFrameThreshold,
		MinNoteLenMs:   DefaultMinNoteLenMs,
	}
}

// CheckBackend verifies the Basic Pitch package is importable, so a missing
// Python environment surfaces at startup instead of mid-workflow.
func (c *Converter) CheckBackend(ctx context.Context) error {
	return c.runner.CheckPythonDependency(ctx, "basic_pitch")
}

// Convert transcribes audioPath to MIDI and returns the output file path.
// Basic Pitch names its output <stem>_basic_pitch.mid inside the output
// directory.
func (c *Converter) Convert(ctx context.Context, audioPath, outputDir string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file %s: %w", audioPath, err)
	}
	if outputDir == "" {
		outputDir = c.OutputDir
	}

	// Basic Pitch runs with the scripts directory as its working directory,
	// so relative paths must be resolved here or the output lands under it.
	audioPath, err := filepath.Abs(audioPath)
	if err != nil {
		return "", fmt.Errorf("resolve audio path: %w", err)
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	midiPath := OutputPath(outputDir, audioPath)
	// Basic Pitch refuses to overwrite an existing transcription.
	if _, err := os.Stat(midiPath); err == nil {
		if err := os.Remove(midiPath); err != nil {
			return "", fmt.Errorf("remove stale %s: %w", midiPath, err)
		}
	}

	args := []string{
		outputDir,
		audioPath,
		"--onset-threshold", fmt.Sprintf("%g", c.OnsetThreshold),
		"--frame-threshold", fmt.Sprintf("%g", c.FrameThreshold),
		"--minimum-note-length", fmt.Sprintf("%g", c.MinNoteLenMs),
	}
	if _, err := c.runner.RunModule(ctx, "basic_pitch", args...); err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	if _, err := os.Stat(midiPath); err != nil {
		return "", fmt.Errorf("transcription produced no output at %s: %w", midiPath, err)
	}
	return midiPath, nil
}

// OutputPath returns where Basic Pitch will write the MIDI for audioPath.
func OutputPath(outputDir, audioPath string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, stem+"_basic_pitch.mid")
}
