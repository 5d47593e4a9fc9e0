//go:build windows

package windows

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/dawctl/dawctl/internal/platform"
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keybdInput struct {
	Vk          uint16
	Scan        uint16
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors the Win32 INPUT struct with the mouse arm of the union,
// which is the largest member (40 bytes total on amd64).
type input struct {
	Type uint32
	_    [4]byte
	Mi   mouseInput
}

// kbdPad pads the keyboard arm out to the size of the mouse arm so both
// can be passed to SendInput as INPUT[].
type keyboardInputPadded struct {
	Type uint32
	_    [4]byte
	Ki   keybdInput
	_    [8]byte
}

// WinInputter implements platform.Inputter via SendInput.
type WinInputter struct{}

// NewInputter creates a Windows input injector.
func NewInputter() *WinInputter {
	return &WinInputter{}
}

func sendMouse(flags uint32) error {
	ev := input{Type: inputMouse, Mi: mouseInput{Flags: flags}}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&ev)), unsafe.Sizeof(ev))
	if n == 0 {
		return fmt.Errorf("SendInput rejected mouse event: %w", err)
	}
	return nil
}

func sendKey(vk uint16, scan uint16, flags uint32) error {
	ev := keyboardInputPadded{Type: inputKeyboard, Ki: keybdInput{Vk: vk, Scan: scan, Flags: flags}}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&ev)), unsafe.Sizeof(input{}))
	if n == 0 {
		return fmt.Errorf("SendInput rejected key event: %w", err)
	}
	return nil
}

func setCursorPos(x, y int) error {
	ok, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ok == 0 {
		return fmt.Errorf("SetCursorPos(%d, %d) failed: %w", x, y, err)
	}
	return nil
}

func buttonFlags(button platform.MouseButton) (down, up uint32) {
	switch button {
	case platform.MouseRight:
		return mouseeventfRightDown, mouseeventfRightUp
	case platform.MouseMiddle:
		return mouseeventfMiddleDown, mouseeventfMiddleUp
	default:
		return mouseeventfLeftDown, mouseeventfLeftUp
	}
}

func (in *WinInputter) Click(x, y int, button platform.MouseButton, count int) error {
	if err := setCursorPos(x, y); err != nil {
		return err
	}
	down, up := buttonFlags(button)
	for i := 0; i < count; i++ {
		if err := sendMouse(down); err != nil {
			return err
		}
		if err := sendMouse(up); err != nil {
			return err
		}
		if i < count-1 {
			// Within the system double-click interval.
			time.Sleep(80 * time.Millisecond)
		}
	}
	return nil
}

func (in *WinInputter) MoveMouse(x, y int) error {
	return setCursorPos(x, y)
}

func (in *WinInputter) Drag(fromX, fromY, toX, toY int, duration time.Duration) error {
	if err := setCursorPos(fromX, fromY); err != nil {
		return err
	}
	if err := sendMouse(mouseeventfLeftDown); err != nil {
		return err
	}

	// Interpolate the motion so the target app registers a drag rather
	// than a teleport. 20 steps matches a smooth fader pull.
	const steps = 20
	stepDelay := duration / steps
	for i := 1; i <= steps; i++ {
		x := fromX + (toX-fromX)*i/steps
		y := fromY + (toY-fromY)*i/steps
		if err := setCursorPos(x, y); err != nil {
			_ = sendMouse(mouseeventfLeftUp)
			return err
		}
		time.Sleep(stepDelay)
	}
	return sendMouse(mouseeventfLeftUp)
}

func (in *WinInputter) TypeText(text string, delay time.Duration) error {
	for _, r := range text {
		for _, cu := range utf16.Encode([]rune{r}) {
			if err := sendKey(0, cu, keyeventfUnicode); err != nil {
				return err
			}
			if err := sendKey(0, cu, keyeventfUnicode|keyeventfKeyUp); err != nil {
				return err
			}
		}
		time.Sleep(delay)
	}
	return nil
}

func (in *WinInputter) KeyTap(key string) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}
	if err := sendKey(vk, 0, 0); err != nil {
		return err
	}
	return sendKey(vk, 0, keyeventfKeyUp)
}

func (in *WinInputter) KeyCombo(keys []string) error {
	vks := make([]uint16, 0, len(keys))
	for _, k := range keys {
		vk, err := virtualKey(k)
		if err != nil {
			return err
		}
		vks = append(vks, vk)
	}
	for _, vk := range vks {
		if err := sendKey(vk, 0, 0); err != nil {
			return err
		}
	}
	for i := len(vks) - 1; i >= 0; i-- {
		if err := sendKey(vks[i], 0, keyeventfKeyUp); err != nil {
			return err
		}
	}
	return nil
}

// virtualKey maps a key name to a Win32 virtual-key code.
func virtualKey(key string) (uint16, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if len(k) == 1 {
		c := k[0]
		if c >= 'a' && c <= 'z' {
			return uint16(c - 'a' + 0x41), nil
		}
		if c >= '0' && c <= '9' {
			return uint16(c), nil
		}
	}
	if vk, ok := namedKeys[k]; ok {
		return vk, nil
	}
	return 0, fmt.Errorf("unknown key: %q", key)
}

var namedKeys = map[string]uint16{
	"ctrl":      0x11,
	"control":   0x11,
	"alt":       0x12,
	"shift":     0x10,
	"win":       0x5B,
	"cmd":       0x5B,
	"enter":     0x0D,
	"return":    0x0D,
	"escape":    0x1B,
	"esc":       0x1B,
	"space":     0x20,
	"tab":       0x09,
	"backspace": 0x08,
	"delete":    0x2E,
	"del":       0x2E,
	"insert":    0x2D,
	"home":      0x24,
	"end":       0x23,
	"pageup":    0x21,
	"pagedown":  0x22,
	"up":        0x26,
	"down":      0x28,
	"left":      0x25,
	"right":     0x27,
	"f1":        0x70,
	"f2":        0x71,
	"f3":        0x72,
	"f4":        0x73,
	"f5":        0x74,
	"f6":        0x75,
	"f7":        0x76,
	"f8":        0x77,
	"f9":        0x78,
	"f10":       0x79,
	"f11":       0x7A,
	"f12":       0x7B,
}
