//go:build windows

package windows

import "github.com/dawctl/dawctl/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Inputter:      NewInputter(),
			WindowManager: NewWindowManager(),
			Screenshotter: NewScreenshotter(),
			Launcher:      NewLauncher(),
		}, nil
	}
}
