package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/measure"
)

func TestConsoleView_RenderOrdersByPosition(t *testing.T) {
	var buf bytes.Buffer
	v := NewConsoleView(&buf, nil)
	low := measure.NewBox(geometry.Rect{X: 0, Y: 200, Width: 10, Height: 10}, "", nil, measure.DefaultOptions())
	high := measure.NewBox(geometry.Rect{X: 50, Y: 10, Width: 20, Height: 20}, "", nil, measure.DefaultOptions())
	v.ShowBox(low)
	v.ShowBox(high)
	v.SetStatus("No marker found, showing pixels")
	v.SetStatus("")

	if err := v.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if lines[0] != "No marker found, showing pixels" {
		t.Fatalf("status line missing: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "20 x 20 px") || !strings.HasPrefix(lines[2], "10 x 10 px") {
		t.Fatalf("unexpected order: %q", lines)
	}
}

func TestConsoleView_RemoveAndClear(t *testing.T) {
	v := NewConsoleView(nil, nil)
	a := measure.NewBox(geometry.Rect{Width: 1, Height: 1}, "", nil, measure.DefaultOptions())
	b := measure.NewBox(geometry.Rect{Width: 2, Height: 2}, "", nil, measure.DefaultOptions())
	v.ShowBox(a)
	v.ShowBox(b)
	v.ShowBox(a) // update keeps order
	if got := v.Labels(); len(got) != 2 || got[0] != "1 x 1 px" {
		t.Fatalf("unexpected labels %q", got)
	}
	v.RemoveBox(a.ID)
	if got := v.Labels(); len(got) != 1 || got[0] != "2 x 2 px" {
		t.Fatalf("unexpected labels after remove %q", got)
	}
	v.ClearBoxes()
	if got := v.Labels(); len(got) != 0 {
		t.Fatalf("expected no labels, got %q", got)
	}
	if err := v.Render(); err != nil {
		t.Fatalf("render with nil writer: %v", err)
	}
}
