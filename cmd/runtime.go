package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dawctl/dawctl/internal/automation"
	"github.com/dawctl/dawctl/internal/execx"
	"github.com/dawctl/dawctl/internal/midi"
	"github.com/dawctl/dawctl/internal/output"
	"github.com/dawctl/dawctl/internal/platform"
	"github.com/dawctl/dawctl/internal/server"
)

// launchWait is how long FL Studio gets to start before window lookup
// begins retrying.
const launchWait = 15 * time.Second

// newServer wires the platform backend, automation engine, and workflows
// into a tool server. CLI commands and the MCP transport share this wiring.
func newServer(srvCfg server.Config) (*server.Server, error) {
	p, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	loc := automation.NewLocator(p.WindowManager, cfg.WindowTitle)
	eng := automation.NewEngine(p, loc, automation.Options{
		ActionDelay:   cfg.ActionDelay,
		TypeDelay:     cfg.TypeDelay,
		ScreenshotDir: cfg.ScreenshotDir,
	}, logger)

	wf := automation.NewWorkflows(eng, p.Launcher, automation.WorkflowOptions{
		ExePath:     cfg.FLExePath,
		ProcessName: cfg.FLProcessName,
		LaunchWait:  launchWait,
		MixerBaseX:  cfg.Mixer.BaseX,
		MixerStride: cfg.Mixer.StrideX,
		MixerTrackY: cfg.Mixer.TrackY,
		FaderTop:    cfg.Mixer.FaderTop,
		FaderBottom: cfg.Mixer.FaderBottom,
		DropX:       cfg.DropX,
		DropY:       cfg.DropY,
	}, logger)

	runner := execx.NewRunner(cfg.PythonPath, cfg.ScriptsDir)

	if srvCfg.FindRetry == (automation.Policy{}) {
		findRetry := automation.DefaultPolicy()
		findRetry.MaxAttempts = cfg.FindRetryAttempts
		findRetry.InitialDelay = cfg.FindRetryDelay
		srvCfg.FindRetry = findRetry
	}

	return server.New(server.Deps{
		Provider:  p,
		Engine:    eng,
		Workflows: wf,
		Matcher:   automation.NewMatcher(eng, cfg.Confidence),
		Converter: midi.NewConverter(runner, cfg.OutputDir),
		Logger:    logger,
	}, srvCfg), nil
}

// runTool dispatches one tool call through the server and prints the result
// in the selected output format.
func runTool(name string, args map[string]interface{}) error {
	srv, err := newServer(server.Config{})
	if err != nil {
		return err
	}

	res := srv.Dispatch(context.Background(), name, args)
	if err := output.Print(res); err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%s failed: %s", name, res.Error)
	}
	return nil
}
