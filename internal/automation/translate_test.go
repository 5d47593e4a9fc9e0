package automation

import (
	"testing"

	"github.com/dawctl/dawctl/internal/platform"
)

func TestToScreenToWindowRoundTrip(t *testing.T) {
	b := platform.Bounds{X: 120, Y: 80, Width: 800, Height: 600}

	absX, absY := ToScreen(b, 30, 40)
	if absX != 150 || absY != 120 {
		t.Errorf("ToScreen = (%d, %d), want (150, 120)", absX, absY)
	}

	relX, relY := ToWindow(b, absX, absY)
	if relX != 30 || relY != 40 {
		t.Errorf("round trip = (%d, %d), want (30, 40)", relX, relY)
	}
}

func TestTranslateStationaryWindowIdempotent(t *testing.T) {
	wm := &fakeWM{windows: testWindows()}
	eng, _ := newTestEngine(t, &fakeInputter{}, wm, &fakeShot{})

	x1, y1, err := eng.Translate(10, 20)
	if err != nil {
		t.Fatal(err)
	}
	x2, y2, err := eng.Translate(10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if x1 != x2 || y1 != y2 {
		t.Errorf("translation changed for stationary window: (%d,%d) vs (%d,%d)", x1, y1, x2, y2)
	}
	if x1 != 110 || y1 != 70 {
		t.Errorf("Translate = (%d, %d), want (110, 70)", x1, y1)
	}
}

func TestTranslateTracksWindowMove(t *testing.T) {
	wm := &fakeWM{windows: testWindows()}
	eng, _ := newTestEngine(t, &fakeInputter{}, wm, &fakeShot{})

	if _, _, err := eng.Translate(0, 0); err != nil {
		t.Fatal(err)
	}

	wm.windows[1].Bounds.X = 400
	wm.windows[1].Bounds.Y = 300
	x, y, err := eng.Translate(10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if x != 410 || y != 320 {
		t.Errorf("Translate after move = (%d, %d), want (410, 320)", x, y)
	}
}
