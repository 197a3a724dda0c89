package layout

import "math"

// ReorderResult describes how a drag changes the order of a container's
// children.
type ReorderResult struct {
	ShouldReorder bool
	SwapWithID    string
	// NewChildOrder is the full child id order after the move.
	NewChildOrder []string
}

// CalculateFlexReorder decides whether dragging box to newPosition moves it
// past a sibling. The dragged child moves once its main-axis centre is
// strictly past a neighbour's centre; landing exactly on the centre never
// reorders. Siblings with equal positions keep their slice order, so the
// result is deterministic for zero-gap, equal-size layouts.
//
// newPosition and the children's positions share the parent's local frame.
func CalculateFlexReorder(box Box, newPosition Point, parent Box, allChildren []Box) ReorderResult {
	cfg, ok := parent.Layout.(FlexLayout)
	if !ok {
		return ReorderResult{}
	}
	ax := axes{row: cfg.Direction == Row}
	ordered := sortedByMain(allChildren, ax)
	current := indexOf(ordered, box.ID)
	if current < 0 {
		return ReorderResult{}
	}

	center := func(b Box) float64 {
		return ax.main(b.X, b.Y) + ax.main(b.Width, b.Height)/2
	}
	dragged := ax.main(newPosition.X, newPosition.Y) + ax.main(box.Width, box.Height)/2

	target := current
	for j := current + 1; j < len(ordered); j++ {
		if dragged <= center(ordered[j]) {
			break
		}
		target = j
	}
	if target == current {
		for j := current - 1; j >= 0; j-- {
			if dragged >= center(ordered[j]) {
				break
			}
			target = j
		}
	}
	if target == current {
		return ReorderResult{}
	}

	order := make([]string, 0, len(ordered))
	for _, b := range ordered {
		if b.ID != box.ID {
			order = append(order, b.ID)
		}
	}
	order = append(order[:target], append([]string{box.ID}, order[target:]...)...)

	return ReorderResult{
		ShouldReorder: true,
		SwapWithID:    ordered[target].ID,
		NewChildOrder: order,
	}
}

// CalculateGridReorder maps the centre of the dragged box to a grid cell and
// swaps the box with the child currently in that cell.
func CalculateGridReorder(box Box, newPosition Point, parent Box, allChildren []Box) ReorderResult {
	cfg, ok := parent.Layout.(GridLayout)
	if !ok || len(allChildren) == 0 {
		return ReorderResult{}
	}
	current := indexOf(allChildren, box.ID)
	if current < 0 {
		return ReorderResult{}
	}

	g := resolveGridCells(parent, cfg)
	px := newPosition.X + box.Width/2
	py := newPosition.Y + box.Height/2
	col := clampIndex(cellIndex(px-g.space.X, g.cellWidth+g.columnGap), g.columns)
	row := clampIndex(cellIndex(py-g.space.Y, g.cellHeight+g.rowGap), g.rows)
	target := min(row*g.columns+col, len(allChildren)-1)
	if target == current {
		return ReorderResult{}
	}

	order := make([]string, len(allChildren))
	for i, c := range allChildren {
		order[i] = c.ID
	}
	order[current], order[target] = order[target], order[current]

	return ReorderResult{
		ShouldReorder: true,
		SwapWithID:    allChildren[target].ID,
		NewChildOrder: order,
	}
}

func cellIndex(offset, pitch float64) int {
	if pitch <= 0 {
		return 0
	}
	return int(math.Floor(offset / pitch))
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// IsDraggingOutsideLayout reports whether the centre of box, placed at
// newPosition in parent's local frame, is more than DragOutsideMargin
// outside the parent's content rectangle.
func IsDraggingOutsideLayout(box Box, newPosition Point, parent Box) bool {
	var lp *Edges
	switch c := parent.Layout.(type) {
	case FlexLayout:
		lp = c.LayoutPadding
	case GridLayout:
		lp = c.LayoutPadding
	}
	space := ContainerSpaceOf(parent, lp)
	cx := newPosition.X + box.Width/2
	cy := newPosition.Y + box.Height/2
	return cx < space.X-DragOutsideMargin ||
		cx > space.Right()+DragOutsideMargin ||
		cy < space.Y-DragOutsideMargin ||
		cy > space.Bottom()+DragOutsideMargin
}
