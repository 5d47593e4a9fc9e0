package automation

import "github.com/dawctl/dawctl/internal/platform"

// ToScreen maps window-relative coordinates to screen-absolute coordinates
// against the given bounds. Pure; callers must pass freshly-read bounds
// because the target window can move between calls.
func ToScreen(b platform.Bounds, relX, relY int) (absX, absY int) {
	return b.X + relX, b.Y + relY
}

// ToWindow maps screen-absolute coordinates to window-relative ones.
func ToWindow(b platform.Bounds, absX, absY int) (relX, relY int) {
	return absX - b.X, absY - b.Y
}

// Translate resolves window-relative coordinates through the engine's
// locator, re-reading the window bounds first.
func (e *Engine) Translate(relX, relY int) (absX, absY int, err error) {
	b, err := e.loc.Bounds()
	if err != nil {
		return 0, 0, err
	}
	absX, absY = ToScreen(b, relX, relY)
	return absX, absY, nil
}
