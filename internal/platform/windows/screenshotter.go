//go:build windows

package windows

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/dawctl/dawctl/internal/platform"
)

const (
	srccopy      = 0x00CC0020
	biRGB        = 0
	dibRGBColors = 0
)

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// WinScreenshotter implements platform.Screenshotter via GDI BitBlt.
type WinScreenshotter struct{}

// NewScreenshotter creates a Windows screen capturer.
func NewScreenshotter() *WinScreenshotter {
	return &WinScreenshotter{}
}

func (s *WinScreenshotter) CaptureRegion(b platform.Bounds) (image.Image, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("capture region must have positive size, got %dx%d", b.Width, b.Height)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("GetDC failed")
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(screenDC, uintptr(b.Width), uintptr(b.Height))
	if bitmap == 0 {
		return nil, fmt.Errorf("CreateCompatibleBitmap failed")
	}
	defer procDeleteObject.Call(bitmap)

	prev, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, prev)

	ok, _, err := procBitBlt.Call(memDC, 0, 0, uintptr(b.Width), uintptr(b.Height),
		screenDC, uintptr(b.X), uintptr(b.Y), srccopy)
	if ok == 0 {
		return nil, fmt.Errorf("BitBlt failed: %w", err)
	}

	// Negative height requests a top-down DIB so rows come out in image order.
	info := bitmapInfo{Header: bitmapInfoHeader{
		Size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:       int32(b.Width),
		Height:      -int32(b.Height),
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}}

	buf := make([]byte, b.Width*b.Height*4)
	lines, _, err := procGetDIBits.Call(memDC, bitmap, 0, uintptr(b.Height),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&info)), dibRGBColors)
	if lines == 0 {
		return nil, fmt.Errorf("GetDIBits failed: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i := 0; i+3 < len(buf); i += 4 {
		// DIB pixels are BGRA.
		img.Pix[i+0] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}
