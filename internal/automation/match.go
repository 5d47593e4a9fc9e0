package automation

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/dawctl/dawctl/internal/platform"
)

// Match is a template-match hit. X, Y are the top-left offset of the match
// within the searched image; Confidence is a normalized similarity score
// in [0,1].
type Match struct {
	X, Y       int
	Confidence float64
}

// matchEpsilon absorbs float rounding so an exact-crop match still passes a
// threshold of 1.0.
const matchEpsilon = 1e-9

// FindTemplate locates needle within haystack by normalized
// cross-correlation over grayscale intensities. Returns the best match at
// or above threshold, or nil if none reaches it.
func FindTemplate(haystack, needle image.Image, threshold float64) *Match {
	hw, hh := haystack.Bounds().Dx(), haystack.Bounds().Dy()
	nw, nh := needle.Bounds().Dx(), needle.Bounds().Dy()
	if nw == 0 || nh == 0 || nw > hw || nh > hh {
		return nil
	}

	hay := grayValues(haystack)
	ned := grayValues(needle)

	nMean, nVar := meanVariance(ned, 0, 0, nw, nw, nh)

	best := Match{Confidence: -1}
	for oy := 0; oy <= hh-nh; oy++ {
		for ox := 0; ox <= hw-nw; ox++ {
			score := nccAt(hay, hw, ox, oy, ned, nw, nh, nMean, nVar)
			if score > best.Confidence {
				best = Match{X: ox, Y: oy, Confidence: score}
			}
		}
	}

	if best.Confidence+matchEpsilon < threshold {
		return nil
	}
	if best.Confidence > 1 {
		best.Confidence = 1
	}
	return &best
}

// nccAt computes the normalized cross-correlation of the needle against the
// haystack window at (ox, oy), mapped from [-1,1] to a [0,1] confidence.
func nccAt(hay []float64, hw, ox, oy int, ned []float64, nw, nh int, nMean, nVar float64) float64 {
	wMean, wVar := meanVariance(hay, ox, oy, hw, nw, nh)

	// Flat patches have no correlation structure; compare means directly.
	if nVar < matchEpsilon || wVar < matchEpsilon {
		if nVar < matchEpsilon && wVar < matchEpsilon && math.Abs(nMean-wMean) < 1 {
			return 1
		}
		return 0
	}

	var cov float64
	for y := 0; y < nh; y++ {
		hrow := (oy+y)*hw + ox
		nrow := y * nw
		for x := 0; x < nw; x++ {
			cov += (hay[hrow+x] - wMean) * (ned[nrow+x] - nMean)
		}
	}

	n := float64(nw * nh)
	ncc := cov / (n * math.Sqrt(nVar) * math.Sqrt(wVar))
	return (ncc + 1) / 2
}

func meanVariance(pix []float64, ox, oy, stride, w, h int) (mean, variance float64) {
	var sum float64
	for y := 0; y < h; y++ {
		row := (oy+y)*stride + ox
		for x := 0; x < w; x++ {
			sum += pix[row+x]
		}
	}
	n := float64(w * h)
	mean = sum / n

	var sq float64
	for y := 0; y < h; y++ {
		row := (oy+y)*stride + ox
		for x := 0; x < w; x++ {
			d := pix[row+x] - mean
			sq += d * d
		}
	}
	variance = sq / n
	return mean, variance
}

// grayValues flattens an image to row-major luma values.
func grayValues(img image.Image) []float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out[i] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
			i++
		}
	}
	return out
}

// ScaleImage resizes img by factor using bilinear interpolation. Used to
// shrink screenshots before returning them over the tool protocol.
func ScaleImage(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// Matcher locates reference images on screen. Used when absolute
// coordinates are not known in advance, e.g. a button that moved between
// application versions.
type Matcher struct {
	eng              *Engine
	defaultThreshold float64
}

// NewMatcher builds a Matcher with the configured default confidence
// threshold.
func NewMatcher(eng *Engine, defaultThreshold float64) *Matcher {
	return &Matcher{eng: eng, defaultThreshold: defaultThreshold}
}

// FindOnScreen captures the search region (default: full target window),
// matches the reference image at refPath against it, and returns the
// screen-absolute center of the match. threshold <= 0 selects the
// configured default; callers pick stricter values for destructive actions
// and looser ones for cosmetic ones.
func (m *Matcher) FindOnScreen(refPath string, threshold float64, region *platform.Bounds) (x, y int, confidence float64, err error) {
	if threshold <= 0 {
		threshold = m.defaultThreshold
	}

	ref, err := loadImage(refPath)
	if err != nil {
		return 0, 0, 0, NotFound("reference image %s: %v", refPath, err)
	}

	var search platform.Bounds
	if region != nil {
		search = *region
	} else {
		search, err = m.eng.loc.Bounds()
		if err != nil {
			return 0, 0, 0, err
		}
	}

	shot, err := m.eng.CaptureRegion(search)
	if err != nil {
		return 0, 0, 0, err
	}

	match := FindTemplate(shot, ref, threshold)
	if match == nil {
		return 0, 0, 0, NotFound("image %s not found in region (%d, %d, %d, %d) at confidence %.2f",
			refPath, search.X, search.Y, search.Width, search.Height, threshold)
	}

	cx := search.X + match.X + ref.Bounds().Dx()/2
	cy := search.Y + match.Y + ref.Bounds().Dy()/2
	return cx, cy, match.Confidence, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
