package model

import (
	"errors"
	"sync"

	flatbush "github.com/bmharper/flatbush-go"
	"github.com/google/uuid"

	"github.com/soocke/qr-measure-go/domain/geometry"
	"github.com/soocke/qr-measure-go/domain/measure"
)

var (
	ErrBoxNotFound = errors.New("box not found")
	// ErrBoxBusy is returned when a box is already being dragged by another owner.
	ErrBoxBusy = errors.New("box is being modified by another gesture")
)

// BoxModel holds the boxes drawn over the current image, in insertion order.
// Each box has at most one writer at a time; see Acquire.
type BoxModel struct {
	mu     sync.Mutex
	boxes  []measure.Box
	owners map[uuid.UUID]uint64

	index *flatbush.Flatbush[float64]
	dirty bool
}

func NewBoxModel() *BoxModel {
	return &BoxModel{owners: map[uuid.UUID]uint64{}, dirty: true}
}

// Reset removes every box. Called when a new image is captured.
func (m *BoxModel) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boxes = nil
	m.owners = map[uuid.UUID]uint64{}
	m.dirty = true
}

// Add appends b on top of the existing boxes.
func (m *BoxModel) Add(b measure.Box) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boxes = append(m.boxes, b)
	m.dirty = true
}

// Remove deletes the box with the given id.
func (m *BoxModel) Remove(id uuid.UUID) error {
	if m == nil {
		return ErrBoxNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return ErrBoxNotFound
	}
	m.boxes = append(m.boxes[:i], m.boxes[i+1:]...)
	delete(m.owners, id)
	m.dirty = true
	return nil
}

// Get returns the box with the given id.
func (m *BoxModel) Get(id uuid.UUID) (measure.Box, bool) {
	if m == nil {
		return measure.Box{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return measure.Box{}, false
	}
	return m.boxes[i], true
}

// Update replaces the stored box with the same ID.
func (m *BoxModel) Update(b measure.Box) error {
	if m == nil {
		return ErrBoxNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(b)
}

func (m *BoxModel) update(b measure.Box) error {
	i := m.find(b.ID)
	if i < 0 {
		return ErrBoxNotFound
	}
	if m.boxes[i].Bounds != b.Bounds {
		m.dirty = true
	}
	m.boxes[i] = b
	return nil
}

// All returns a copy of the boxes in insertion order.
func (m *BoxModel) All() []measure.Box {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]measure.Box, len(m.boxes))
	copy(out, m.boxes)
	return out
}

// Len returns the number of boxes.
func (m *BoxModel) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.boxes)
}

// BoxAt returns the topmost box containing pt.
func (m *BoxModel) BoxAt(pt geometry.Point) (measure.Box, bool) {
	if m == nil {
		return measure.Box{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.boxes) == 0 {
		return measure.Box{}, false
	}
	if m.dirty || m.index == nil {
		m.rebuildIndex()
	}
	best := -1
	for _, i := range m.index.Search(pt.X, pt.Y, pt.X, pt.Y) {
		// the index stores canonical bounds, which is exactly Contains
		if i > best {
			best = i
		}
	}
	if best < 0 {
		return measure.Box{}, false
	}
	return m.boxes[best], true
}

// Acquire makes owner the single writer of the box until Release. Acquiring
// again with the same owner is a no-op.
func (m *BoxModel) Acquire(id uuid.UUID, owner uint64) error {
	if m == nil {
		return ErrBoxNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(id) < 0 {
		return ErrBoxNotFound
	}
	if cur, ok := m.owners[id]; ok && cur != owner {
		return ErrBoxBusy
	}
	if m.owners == nil {
		m.owners = map[uuid.UUID]uint64{}
	}
	m.owners[id] = owner
	return nil
}

// Release gives up ownership. Releasing a box owned by someone else is ignored.
func (m *BoxModel) Release(id uuid.UUID, owner uint64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.owners[id]; ok && cur == owner {
		delete(m.owners, id)
	}
}

// UpdateOwned replaces the box only if owner currently holds it.
func (m *BoxModel) UpdateOwned(b measure.Box, owner uint64) error {
	if m == nil {
		return ErrBoxNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.owners[b.ID]; !ok || cur != owner {
		return ErrBoxBusy
	}
	return m.update(b)
}

func (m *BoxModel) find(id uuid.UUID) int {
	for i := range m.boxes {
		if m.boxes[i].ID == id {
			return i
		}
	}
	return -1
}

// rebuildIndex must be called with mu held and at least one box.
func (m *BoxModel) rebuildIndex() {
	fb := flatbush.NewFlatbush[float64]()
	fb.Reserve(len(m.boxes))
	for _, b := range m.boxes {
		r := b.Bounds.Canon()
		fb.Add(r.Left(), r.Top(), r.Right(), r.Bottom())
	}
	fb.Finish()
	m.index = fb
	m.dirty = false
}
