package automation

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// MarkPoint draws a crosshair at the given image-relative point plus a short
// label, and returns the annotated copy. Diagnostic screenshots are the only
// post-hoc artifact a caller gets from a failed action, so the marker shows
// exactly where the engine aimed.
func MarkPoint(img image.Image, x, y int, label string) image.Image {
	rgba := toRGBA(img)

	markColor := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	drawCrosshair(rgba, x, y, 12, markColor)
	if label != "" {
		drawTextWithOutline(rgba, label, x, y-18, textColor, outlineColor)
	}
	return rgba
}

// toRGBA converts any image to RGBA for drawing.
func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func inBounds(b image.Rectangle, x, y int) bool {
	return x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y
}

// drawCrosshair draws a plus-shaped marker of the given arm length.
func drawCrosshair(img *image.RGBA, x, y, arm int, c color.Color) {
	b := img.Bounds()
	for d := -arm; d <= arm; d++ {
		if inBounds(b, x+d, y) {
			img.Set(x+d, y, c)
		}
		if inBounds(b, x, y+d) {
			img.Set(x, y+d, c)
		}
	}
}

// drawTextWithOutline draws text centered at (x, y) with a one-pixel outline
// for visibility on arbitrary backgrounds.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13: ~7px per character, 13px tall.
	offsetX := x - len(text)*7/2
	offsetY := y - 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
