package canvas

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agiangrant/boxlayout/layout"
)

// OrchestratorConfig holds the optional collaborators of an Orchestrator.
type OrchestratorConfig struct {
	// Artboards resolves artboards for GenerateLayoutInArtboard.
	Artboards ArtboardStore
	// Overflow receives grid overflow ids. May be nil.
	Overflow OverflowSink
	Logger   *zap.Logger
	// NewID generates ids for created boxes. Defaults to random UUIDs.
	NewID func() string
}

// Orchestrator applies layout results to a BoxStore.
//
// It is not safe for concurrent use: store callbacks run synchronously on the
// goroutine that triggered the write, which is what the re-entrancy guard
// relies on.
type Orchestrator struct {
	boxes     BoxStore
	artboards ArtboardStore
	overflow  OverflowSink
	logger    *zap.Logger
	newID     func() string

	recalculating bool
}

// NewOrchestrator creates an orchestrator over boxes.
func NewOrchestrator(boxes BoxStore, config OrchestratorConfig) *Orchestrator {
	o := &Orchestrator{
		boxes:     boxes,
		artboards: config.Artboards,
		overflow:  config.Overflow,
		logger:    config.Logger,
		newID:     config.NewID,
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	o.logger = o.logger.Named("orchestrator")
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	return o
}

// Watch subscribes HandleUpdate to n.
func (o *Orchestrator) Watch(n Notifier) (cancel func()) {
	return n.Subscribe(o.HandleUpdate)
}

// Recalculating reports whether a recalculation is in flight.
func (o *Orchestrator) Recalculating() bool {
	return o.recalculating
}

// guarded runs fn with the re-entrancy flag set. Nested calls run fn under
// the outer guard.
func (o *Orchestrator) guarded(fn func()) {
	if o.recalculating {
		fn()
		return
	}
	o.recalculating = true
	defer func() { o.recalculating = false }()
	fn()
}

// Recalculate lays out the children of containerID and writes the result
// back. It returns false when the box is missing, has no layout, or a
// recalculation is already running.
func (o *Orchestrator) Recalculate(containerID string) (layout.Result, bool) {
	if o.recalculating {
		o.logger.Debug("recalculation skipped, already in progress", zap.String("container", containerID))
		return layout.Result{}, false
	}
	container, ok := o.boxes.Box(containerID)
	if !ok || !container.HasLayout() {
		return layout.Result{}, false
	}

	children := layout.ChildrenOf(container, o.boxes.Boxes())
	res := layout.Calculate(container, children, container.Layout)
	o.guarded(func() {
		// write logs each failed box; the remaining positions still land.
		_ = o.write(res.Positions)
	})
	o.publishOverflow(res)

	o.logger.Debug("recalculated",
		zap.String("container", containerID),
		zap.String("kind", string(layout.KindOf(container.Layout))),
		zap.Int("children", len(children)),
		zap.Bool("overflow", res.Overflow),
	)
	return res, true
}

// UpdateLayoutConfig merges patch into the container's layout and
// recalculates. Growing a grid beyond its current child count creates
// minimum-size children to fill the new cells.
func (o *Orchestrator) UpdateLayoutConfig(containerID string, patch LayoutPatch) error {
	container, ok := o.boxes.Box(containerID)
	if !ok {
		return fmt.Errorf("update layout of %s: %w", containerID, ErrBoxNotFound)
	}
	cfg := patch.Apply(container.Layout)
	if err := layout.Validate(cfg); err != nil {
		return fmt.Errorf("update layout of %s: %w", containerID, err)
	}

	var err error
	o.guarded(func() {
		if err = o.boxes.UpdateBox(containerID, BoxPatch{Layout: cfg}); err != nil {
			return
		}
		grid, isGrid := cfg.(layout.GridLayout)
		if !isGrid {
			return
		}
		children := layout.ChildrenOf(container, o.boxes.Boxes())
		missing := grid.Cells() - len(children)
		if missing <= 0 {
			return
		}
		order := make([]string, 0, grid.Cells())
		for _, c := range children {
			order = append(order, c.ID)
		}
		for i := 0; i < missing; i++ {
			child := o.newChild(container)
			if err = o.boxes.AddBox(child); err != nil {
				return
			}
			order = append(order, child.ID)
		}
		err = o.boxes.UpdateBox(containerID, BoxPatch{Children: order})
		o.logger.Debug("grid grown", zap.String("container", containerID), zap.Int("added", missing))
	})
	if err != nil {
		return fmt.Errorf("update layout of %s: %w", containerID, err)
	}

	o.Recalculate(containerID)
	return nil
}

// GenerateLayoutInArtboard creates a container box filling the artboard with
// count children laid out by cfg. It returns the container id followed by
// the new child ids; the children end up selected.
func (o *Orchestrator) GenerateLayoutInArtboard(artboardID string, cfg layout.Config, count int) ([]string, error) {
	if o.artboards == nil {
		return nil, fmt.Errorf("generate in artboard %s: %w", artboardID, ErrArtboardNotFound)
	}
	ab, ok := o.artboards.Artboard(artboardID)
	if !ok {
		return nil, fmt.Errorf("generate in artboard %s: %w", artboardID, ErrArtboardNotFound)
	}
	container := layout.Box{
		ID:         o.newID(),
		ArtboardID: ab.ID,
		Width:      ab.Width,
		Height:     ab.Height,
	}
	ids, err := o.generate(container, true, cfg, count)
	if err != nil {
		return nil, fmt.Errorf("generate in artboard %s: %w", artboardID, err)
	}
	return append([]string{container.ID}, ids...), nil
}

// GenerateLayoutInBox turns an existing box into a layout container and adds
// count children to it. Existing children are kept and laid out first. It
// returns the new child ids; they end up selected.
func (o *Orchestrator) GenerateLayoutInBox(boxID string, cfg layout.Config, count int) ([]string, error) {
	container, ok := o.boxes.Box(boxID)
	if !ok {
		return nil, fmt.Errorf("generate in box %s: %w", boxID, ErrBoxNotFound)
	}
	ids, err := o.generate(container, false, cfg, count)
	if err != nil {
		return nil, fmt.Errorf("generate in box %s: %w", boxID, err)
	}
	return ids, nil
}

func (o *Orchestrator) generate(container layout.Box, create bool, cfg layout.Config, count int) ([]string, error) {
	if layout.KindOf(cfg) == layout.KindNone {
		return nil, ErrNotContainer
	}
	if err := layout.Validate(cfg); err != nil {
		return nil, err
	}
	container.Layout = cfg

	var existing []layout.Box
	if !create {
		existing = layout.ChildrenOf(container, o.boxes.Boxes())
	}
	created := make([]layout.Box, 0, max(count, 0))
	for n := max(count, 0); n > 0; n-- {
		created = append(created, o.newChild(container))
	}

	all := append(append([]layout.Box(nil), existing...), created...)
	res := layout.Calculate(container, all, cfg)

	ids := make([]string, 0, len(created))
	order := make([]string, 0, len(all))
	for _, c := range all {
		order = append(order, c.ID)
	}
	container.Children = order

	var err error
	o.guarded(func() {
		if create {
			if err = o.boxes.AddBox(container); err != nil {
				return
			}
		}
		for _, c := range created {
			if p, ok := res.Position(c.ID); ok {
				c.X, c.Y, c.Width, c.Height = p.X, p.Y, p.Width, p.Height
			}
			if err = o.boxes.AddBox(c); err != nil {
				return
			}
			ids = append(ids, c.ID)
		}
		for _, c := range existing {
			if p, ok := res.Position(c.ID); ok {
				if err = o.boxes.UpdateBox(c.ID, GeometryPatch(p)); err != nil {
					return
				}
			}
		}
		if !create {
			err = o.boxes.UpdateBox(container.ID, BoxPatch{Layout: cfg, Children: order})
		}
	})
	if err != nil {
		return nil, err
	}
	o.publishOverflow(res)

	for i, id := range ids {
		o.boxes.SelectBox(id, i > 0)
	}
	o.logger.Info("layout generated",
		zap.String("container", container.ID),
		zap.String("kind", string(cfg.Kind())),
		zap.Int("created", len(ids)),
		zap.Bool("overflow", res.Overflow),
	)
	return ids, nil
}

// newChild returns a minimum-size child of container that fills its share
// of the available space.
func (o *Orchestrator) newChild(container layout.Box) layout.Box {
	grow := 1.0
	return layout.Box{
		ID:               o.newID(),
		ParentID:         container.ID,
		ArtboardID:       container.ArtboardID,
		Width:            layout.MinWidth,
		Height:           layout.MinHeight,
		LayoutChildProps: &layout.ChildProps{FlexGrow: &grow},
	}
}

// BatchUpdate writes a list of positions under the re-entrancy guard. Missing
// boxes are skipped and reported together.
func (o *Orchestrator) BatchUpdate(updates []layout.ChildPosition) error {
	var err error
	o.guarded(func() { err = o.write(updates) })
	return err
}

func (o *Orchestrator) write(positions []layout.ChildPosition) error {
	var errs []error
	for _, p := range positions {
		if err := o.boxes.UpdateBox(p.ID, GeometryPatch(p)); err != nil {
			o.logger.Warn("position not written", zap.String("box", p.ID), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ApplyResize constrains a resize of boxID and writes the result.
func (o *Orchestrator) ApplyResize(boxID string, size layout.Size) (layout.ConstraintResult, error) {
	box, ok := o.boxes.Box(boxID)
	if !ok {
		return layout.ConstraintResult{}, fmt.Errorf("resize %s: %w", boxID, ErrBoxNotFound)
	}
	res := layout.ConstrainResize(box, size, o.boxes.Boxes())
	return res, o.applyConstraint(boxID, res)
}

// ApplyMultiResize applies the size change of the first id to every
// selected sibling.
func (o *Orchestrator) ApplyMultiResize(boxIDs []string, size layout.Size) (layout.ConstraintResult, error) {
	res := layout.ConstrainMultiLayoutResize(boxIDs, size, o.boxes.Boxes())
	first := ""
	if len(boxIDs) > 0 {
		first = boxIDs[0]
	}
	return res, o.applyConstraint(first, res)
}

func (o *Orchestrator) applyConstraint(boxID string, res layout.ConstraintResult) error {
	if res.Overflow {
		o.logger.Warn("resize clamped", zap.String("box", boxID), zap.String("parent", res.LayoutParent.ID))
	}
	if err := o.BatchUpdate(res.Updates); err != nil {
		return fmt.Errorf("resize %s: %w", boxID, err)
	}
	return nil
}

// ApplyReorder moves boxID within its layout parent when a drag to
// newPosition crosses a sibling, then recalculates the parent.
func (o *Orchestrator) ApplyReorder(boxID string, newPosition layout.Point) (layout.ReorderResult, error) {
	all := o.boxes.Boxes()
	box, ok := o.boxes.Box(boxID)
	if !ok {
		return layout.ReorderResult{}, fmt.Errorf("reorder %s: %w", boxID, ErrBoxNotFound)
	}
	parent, ok := layout.LayoutParent(box, all)
	if !ok {
		return layout.ReorderResult{}, nil
	}
	children := layout.ChildrenOf(parent, all)

	var res layout.ReorderResult
	switch parent.Layout.(type) {
	case layout.FlexLayout:
		res = layout.CalculateFlexReorder(box, newPosition, parent, children)
	case layout.GridLayout:
		res = layout.CalculateGridReorder(box, newPosition, parent, children)
	}
	if !res.ShouldReorder {
		return res, nil
	}

	var err error
	o.guarded(func() {
		err = o.boxes.UpdateBox(parent.ID, BoxPatch{Children: res.NewChildOrder})
	})
	if err != nil {
		return res, fmt.Errorf("reorder %s: %w", boxID, err)
	}
	o.Recalculate(parent.ID)
	return res, nil
}

// HandleUpdate reacts to store changes: structural changes to a container
// recalculate it, and a child's layout hints recalculate its parent.
// Updates caused by the orchestrator's own writes arrive while the guard is
// set and are absorbed.
func (o *Orchestrator) HandleUpdate(u Update) {
	if o.recalculating {
		return
	}
	switch u.Type {
	case UpdateAdd, UpdateRemove, UpdateChildProps:
		if u.ParentID != "" {
			o.Recalculate(u.ParentID)
		}
	case UpdateLayout, UpdateReorder:
		o.Recalculate(u.BoxID)
	}
}

func (o *Orchestrator) publishOverflow(res layout.Result) {
	if o.overflow == nil {
		return
	}
	if len(res.OverflowChildIDs) > 0 {
		o.overflow.SetOverflowBoxIDs(res.OverflowChildIDs)
		return
	}
	o.overflow.ClearOverflowBoxIDs()
}
