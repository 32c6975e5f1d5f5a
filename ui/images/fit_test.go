package images

import (
	"testing"

	"github.com/soocke/qr-measure-go/domain/geometry"
)

func TestFit_DownscalesAndCentres(t *testing.T) {
	// 4000x3000 photo in a 1000x1000 view: width bound, letterboxed vertically
	m := Fit(4000, 3000, 1000, 1000)
	if m.Ratio != 0.25 {
		t.Fatalf("expected ratio 0.25, got %v", m.Ratio)
	}
	if m.OffsetX != 0 || m.OffsetY != 125 {
		t.Fatalf("unexpected offsets %v,%v", m.OffsetX, m.OffsetY)
	}
	got := m.ToView(geometry.Rect{X: 400, Y: 400, Width: 400, Height: 400})
	want := geometry.Rect{X: 100, Y: 225, Width: 100, Height: 100}
	if got != want {
		t.Fatalf("expected %v got %v", want, got)
	}
	if back := m.ToImage(got); back != (geometry.Rect{X: 400, Y: 400, Width: 400, Height: 400}) {
		t.Fatalf("round trip mismatch: %v", back)
	}
}

func TestFit_Upscales(t *testing.T) {
	m := Fit(100, 200, 400, 400)
	if m.Ratio != 2 || m.OffsetX != 100 || m.OffsetY != 0 {
		t.Fatalf("unexpected mapping %+v", m)
	}
}

func TestFit_DegenerateIsIdentity(t *testing.T) {
	for _, m := range []FitMapping{Fit(0, 10, 10, 10), Fit(10, 10, 0, 10), {}} {
		r := geometry.Rect{X: 3, Y: 4, Width: 5, Height: 6}
		if got := m.ToView(r); got != r {
			t.Fatalf("expected identity, got %v", got)
		}
	}
}
