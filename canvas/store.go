// Package canvas keeps container layouts in sync with the box collection.
//
// The Orchestrator reads boxes from a BoxStore, runs the layout engine and
// writes the computed geometry back. Writing N positions produces N store
// notifications; the Orchestrator absorbs the ones that would re-enter a
// recalculation already in flight.
package canvas

import (
	"errors"
	"slices"

	"github.com/agiangrant/boxlayout/layout"
)

var (
	ErrBoxNotFound      = errors.New("box not found")
	ErrDuplicateBox     = errors.New("box already exists")
	ErrArtboardNotFound = errors.New("artboard not found")
	ErrNotContainer     = errors.New("box has no layout")
)

// UpdateType identifies what kind of change a store notification carries.
type UpdateType uint8

const (
	UpdateProperty UpdateType = iota // Geometry or other plain fields changed
	UpdateLayout                     // The box's layout config changed
	UpdateReorder                    // The box's child order changed
	UpdateAdd                        // Box added
	UpdateRemove                     // Box removed
	UpdateChildProps                 // The box's per-child layout hints changed
)

func (t UpdateType) String() string {
	switch t {
	case UpdateLayout:
		return "layout"
	case UpdateReorder:
		return "reorder"
	case UpdateAdd:
		return "add"
	case UpdateRemove:
		return "remove"
	case UpdateChildProps:
		return "child-props"
	}
	return "property"
}

// Update is a single store change notification.
type Update struct {
	Type     UpdateType
	BoxID    string
	ParentID string
}

// BoxPatch is a partial box update. Nil fields are left unchanged; a nil
// Layout keeps the current config (use layout.NoLayout{} to clear it) and a
// nil Children keeps the current order.
type BoxPatch struct {
	X, Y          *float64
	Width, Height *float64
	ParentID      *string
	Children      []string
	Layout        layout.Config
	ChildProps    *layout.ChildProps
}

// GeometryPatch turns a computed position into a patch.
func GeometryPatch(p layout.ChildPosition) BoxPatch {
	return BoxPatch{X: &p.X, Y: &p.Y, Width: &p.Width, Height: &p.Height}
}

// apply merges the patch into b and reports which kind of update it was.
func (p BoxPatch) apply(b *layout.Box) UpdateType {
	kind := UpdateProperty
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Width != nil {
		b.Width = *p.Width
	}
	if p.Height != nil {
		b.Height = *p.Height
	}
	if p.ParentID != nil {
		b.ParentID = *p.ParentID
	}
	if p.ChildProps != nil {
		b.LayoutChildProps = p.ChildProps.Clone()
		kind = UpdateChildProps
	}
	if p.Children != nil {
		b.Children = slices.Clone(p.Children)
		kind = UpdateReorder
	}
	if p.Layout != nil {
		b.Layout = layout.CloneConfig(p.Layout)
		kind = UpdateLayout
	}
	return kind
}

// BoxStore is the box collection the orchestrator reads and writes.
type BoxStore interface {
	Box(id string) (layout.Box, bool)
	Boxes() []layout.Box
	UpdateBox(id string, patch BoxPatch) error
	AddBox(b layout.Box) error
	SelectBox(id string, multi bool)
}

// Notifier delivers store updates to subscribers. The returned function
// cancels the subscription.
type Notifier interface {
	Subscribe(fn func(Update)) func()
}

// Artboard is a top-level drawing surface.
type Artboard struct {
	ID            string
	Width, Height float64
}

// ArtboardStore resolves artboards by id.
type ArtboardStore interface {
	Artboard(id string) (Artboard, bool)
}

// Artboards is a map-backed ArtboardStore.
type Artboards map[string]Artboard

func (a Artboards) Artboard(id string) (Artboard, bool) {
	ab, ok := a[id]
	return ab, ok
}

// OverflowSink receives the ids of children that did not fit their
// container so a properties panel can show a warning.
type OverflowSink interface {
	SetOverflowBoxIDs(ids []string)
	ClearOverflowBoxIDs()
}
