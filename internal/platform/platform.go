package platform

import (
	"image"
	"time"
)

// Inputter injects mouse and keyboard events into the OS input subsystem.
// Calls are synchronous and carry no retry logic; callers layer that on.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error
	MoveMouse(x, y int) error
	Drag(fromX, fromY, toX, toY int, duration time.Duration) error

	// TypeText emits characters one at a time with the given inter-character
	// delay. The target application has no keystroke acknowledgment, so the
	// delay is the only defense against dropped input while it renders.
	TypeText(text string, delay time.Duration) error

	KeyTap(key string) error
	KeyCombo(keys []string) error
}

// WindowManager enumerates and manipulates top-level OS windows.
type WindowManager interface {
	// ListWindows returns all visible top-level windows.
	ListWindows() ([]WindowInfo, error)

	// FocusWindow raises the window and gives it input focus.
	FocusWindow(handle uintptr) error

	// WindowBounds re-reads the current screen bounds of the window.
	// Returns an error if the handle no longer refers to a live window.
	WindowBounds(handle uintptr) (Bounds, error)
}

// Screenshotter captures a screen region as an image.
type Screenshotter interface {
	CaptureRegion(b Bounds) (image.Image, error)
}

// Launcher starts and stops the target application process.
type Launcher interface {
	// Launch starts the executable and returns its PID. It does not check
	// whether the application is already running; use IsRunning first.
	Launch(exePath string) (int, error)

	// Close terminates all processes matching the executable name.
	Close(processName string) error

	IsRunning(processName string) (bool, error)
}
