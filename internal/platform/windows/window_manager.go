//go:build windows

package windows

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/dawctl/dawctl/internal/platform"
)

const swRestore = 9

// WinWindowManager implements platform.WindowManager via user32.
type WinWindowManager struct{}

// NewWindowManager creates a Windows window manager.
func NewWindowManager() *WinWindowManager {
	return &WinWindowManager{}
}

func windowTitle(hwnd uintptr) string {
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), length+1)
	return syscall.UTF16ToString(buf)
}

func windowRect(hwnd uintptr) (platform.Bounds, error) {
	var r rect
	ok, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return platform.Bounds{}, fmt.Errorf("GetWindowRect failed: %w", err)
	}
	return platform.Bounds{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}, nil
}

func (wm *WinWindowManager) ListWindows() ([]platform.WindowInfo, error) {
	var windows []platform.WindowInfo

	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible == 0 {
			return 1 // continue enumeration
		}
		title := windowTitle(hwnd)
		if title == "" {
			return 1
		}
		iconic, _, _ := procIsIconic.Call(hwnd)
		bounds, _ := windowRect(hwnd)
		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

		windows = append(windows, platform.WindowInfo{
			Handle:    hwnd,
			Title:     title,
			Bounds:    bounds,
			PID:       int(pid),
			Visible:   true,
			Minimized: iconic != 0,
		})
		return 1
	})

	ok, _, err := procEnumWindows.Call(cb, 0)
	if ok == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	return windows, nil
}

func (wm *WinWindowManager) FocusWindow(handle uintptr) error {
	if alive, _, _ := procIsWindow.Call(handle); alive == 0 {
		return fmt.Errorf("window handle %#x is no longer valid", handle)
	}
	if iconic, _, _ := procIsIconic.Call(handle); iconic != 0 {
		procShowWindow.Call(handle, swRestore)
	}
	ok, _, err := procSetForegroundWindow.Call(handle)
	if ok == 0 {
		return fmt.Errorf("SetForegroundWindow failed: %w", err)
	}
	return nil
}

func (wm *WinWindowManager) WindowBounds(handle uintptr) (platform.Bounds, error) {
	if alive, _, _ := procIsWindow.Call(handle); alive == 0 {
		return platform.Bounds{}, fmt.Errorf("window handle %#x is no longer valid", handle)
	}
	return windowRect(handle)
}
