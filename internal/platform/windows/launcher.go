//go:build windows

package windows

import (
	"fmt"
	"os/exec"
	"strings"
)

// WinLauncher implements platform.Launcher via os/exec and tasklist/taskkill.
type WinLauncher struct{}

// NewLauncher creates a Windows process launcher.
func NewLauncher() *WinLauncher {
	return &WinLauncher{}
}

func (l *WinLauncher) Launch(exePath string) (int, error) {
	cmd := exec.Command(exePath)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to launch %s: %w", exePath, err)
	}
	pid := cmd.Process.Pid
	// Detach; the DAW outlives us.
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("failed to release process: %w", err)
	}
	return pid, nil
}

func (l *WinLauncher) Close(processName string) error {
	out, err := exec.Command("taskkill", "/IM", processName).CombinedOutput()
	if err != nil {
		return fmt.Errorf("taskkill %s: %w: %s", processName, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (l *WinLauncher) IsRunning(processName string) (bool, error) {
	out, err := exec.Command("tasklist", "/FI", "IMAGENAME eq "+processName, "/NH").Output()
	if err != nil {
		return false, fmt.Errorf("tasklist: %w", err)
	}
	return strings.Contains(strings.ToLower(string(out)), strings.ToLower(processName)), nil
}
