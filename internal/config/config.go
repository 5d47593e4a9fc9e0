// Package config loads process configuration once at startup. Values come
// from environment variables first, optionally overlaid by a YAML file, and
// are treated as read-only for the lifetime of the engine.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config stores all settings consumed by the automation engine, the MCP
// server, and the surrounding pipelines.
type Config struct {
	// LogLevel sets the logger level: debug, info, warn, error.
	LogLevel string `env:"DAWCTL_LOG_LEVEL" envDefault:"info" yaml:"log_level"`

	// FLExePath is the FL Studio executable to launch.
	FLExePath string `env:"DAWCTL_FL_EXE" envDefault:"C:\\Program Files\\Image-Line\\FL Studio 21\\FL.exe" yaml:"fl_exe_path"`
	// FLProcessName is the image name used for liveness checks and close.
	FLProcessName string `env:"DAWCTL_FL_PROCESS" envDefault:"FL.exe" yaml:"fl_process_name"`
	// WindowTitle is the substring used to locate the FL Studio window.
	WindowTitle string `env:"DAWCTL_WINDOW_TITLE" envDefault:"FL Studio" yaml:"window_title"`

	// Confidence is the default image-match threshold in [0,1].
	Confidence float64 `env:"DAWCTL_CONFIDENCE" envDefault:"0.8" yaml:"confidence"`
	// FindRetryAttempts bounds image-search retries before giving up.
	FindRetryAttempts int `env:"DAWCTL_FIND_RETRY_ATTEMPTS" envDefault:"3" yaml:"find_retry_attempts"`
	// FindRetryDelay is the initial backoff between image-search retries.
	FindRetryDelay time.Duration `env:"DAWCTL_FIND_RETRY_DELAY" envDefault:"500ms" yaml:"find_retry_delay"`
	// ActionDelay is the settle pause after each injected action.
	ActionDelay time.Duration `env:"DAWCTL_ACTION_DELAY" envDefault:"200ms" yaml:"action_delay"`
	// TypeDelay is the inter-character delay while typing.
	TypeDelay time.Duration `env:"DAWCTL_TYPE_DELAY" envDefault:"50ms" yaml:"type_delay"`
	// ScreenshotDir receives diagnostic screenshots.
	ScreenshotDir string `env:"DAWCTL_SCREENSHOT_DIR" envDefault:"output/screenshots" yaml:"screenshot_dir"`

	// DropX, DropY are the default playlist drop coordinates for MIDI files.
	DropX int `env:"DAWCTL_DROP_X" envDefault:"400" yaml:"drop_x"`
	DropY int `env:"DAWCTL_DROP_Y" envDefault:"300" yaml:"drop_y"`

	Mixer MixerGeometry `envPrefix:"DAWCTL_MIXER_" yaml:"mixer"`

	// Ollama / local inference settings.
	LLMProvider string `env:"DAWCTL_LLM_PROVIDER" envDefault:"ollama" yaml:"llm_provider"`
	LLMModel    string `env:"DAWCTL_LLM_MODEL" envDefault:"mistral" yaml:"llm_model"`
	LLMBaseURL  string `env:"DAWCTL_LLM_URL" envDefault:"http://localhost:11434" yaml:"llm_base_url"`

	// Audio-to-MIDI conversion settings.
	PythonPath string `env:"DAWCTL_PYTHON" yaml:"python_path"`
	ScriptsDir string `env:"DAWCTL_SCRIPTS_DIR" envDefault:"scripts" yaml:"scripts_dir"`
	OutputDir  string `env:"DAWCTL_OUTPUT_DIR" envDefault:"output" yaml:"output_dir"`
}

// MixerGeometry maps mixer track indexes to screen positions. The values are
// resolution-dependent, which is why they live in configuration rather than
// code.
type MixerGeometry struct {
	BaseX       int `env:"BASE_X" envDefault:"50" yaml:"base_x"`
	StrideX     int `env:"STRIDE_X" envDefault:"60" yaml:"stride_x"`
	TrackY      int `env:"TRACK_Y" envDefault:"400" yaml:"track_y"`
	FaderTop    int `env:"FADER_TOP" envDefault:"320" yaml:"fader_top"`
	FaderBottom int `env:"FADER_BOTTOM" envDefault:"500" yaml:"fader_bottom"`
}

// Load parses environment variables into Config, then overlays the YAML file
// at path if path is non-empty.
func Load(path string) (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if cfg.Confidence < 0 || cfg.Confidence > 1 {
		return Config{}, fmt.Errorf("confidence must be in [0,1], got %v", cfg.Confidence)
	}
	if cfg.Mixer.FaderBottom <= cfg.Mixer.FaderTop {
		return Config{}, fmt.Errorf("mixer fader_bottom (%d) must be below fader_top (%d) on screen", cfg.Mixer.FaderBottom, cfg.Mixer.FaderTop)
	}
	return cfg, nil
}
