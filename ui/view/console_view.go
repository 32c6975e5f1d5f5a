package view

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/soocke/qr-measure-go/domain/measure"
)

// ConsoleView keeps the last rendered state of every box and prints it as
// text. It stands in for the on-screen overlay in headless runs.
type ConsoleView struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
	boxes  map[uuid.UUID]measure.Box
	order  []uuid.UUID
	status string
}

// NewConsoleView creates a view writing its report to out.
func NewConsoleView(out io.Writer, logger *slog.Logger) *ConsoleView {
	return &ConsoleView{out: out, logger: logger, boxes: map[uuid.UUID]measure.Box{}}
}

func (v *ConsoleView) ShowBox(b measure.Box) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.boxes[b.ID]; !ok {
		v.order = append(v.order, b.ID)
	}
	v.boxes[b.ID] = b
	if v.logger != nil {
		v.logger.Debug("box", "id", b.ID, "bounds", b.Bounds.String(), "label", b.Label.Text)
	}
}

func (v *ConsoleView) RemoveBox(id uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.boxes, id)
	for i, o := range v.order {
		if o == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

func (v *ConsoleView) ClearBoxes() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.boxes = map[uuid.UUID]measure.Box{}
	v.order = nil
}

func (v *ConsoleView) SetStatus(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s == "" {
		return
	}
	v.status = s
	if v.logger != nil {
		v.logger.Info("status", "text", s)
	}
}

// Status returns the last non-empty status text.
func (v *ConsoleView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Labels returns the label text of every visible box in display order.
func (v *ConsoleView) Labels() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.boxes[id].Label.Text)
	}
	return out
}

// Render prints one line per box, top to bottom then left to right.
func (v *ConsoleView) Render() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.out == nil {
		return nil
	}
	boxes := make([]measure.Box, 0, len(v.order))
	for _, id := range v.order {
		boxes = append(boxes, v.boxes[id])
	}
	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].Label.Position.Y != boxes[j].Label.Position.Y {
			return boxes[i].Label.Position.Y < boxes[j].Label.Position.Y
		}
		return boxes[i].Label.Position.X < boxes[j].Label.Position.X
	})
	if v.status != "" {
		if _, err := fmt.Fprintln(v.out, v.status); err != nil {
			return err
		}
	}
	for _, b := range boxes {
		if _, err := fmt.Fprintf(v.out, "%-24s at (%.0f, %.0f)  %s\n", b.Label.Text, b.Label.Position.X, b.Label.Position.Y, b.Bounds.String()); err != nil {
			return err
		}
	}
	return nil
}
