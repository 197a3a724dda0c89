package layout

// ConstraintResult is the outcome of bounding an interactive resize.
type ConstraintResult struct {
	IsLayoutChild bool
	LayoutParent  Box
	// Updates are the positions to write back, local to LayoutParent.
	Updates []ChildPosition
	// Overflow is set when the request had to be clamped or siblings were
	// squeezed to their minimum size.
	Overflow bool
}

// LayoutParent returns box's parent when that parent is a layout container.
func LayoutParent(box Box, all []Box) (Box, bool) {
	if box.ParentID == "" {
		return Box{}, false
	}
	i := indexOf(all, box.ParentID)
	if i < 0 || !all[i].HasLayout() {
		return Box{}, false
	}
	return all[i], true
}

// IsLayoutChild reports whether box is laid out by its parent.
func IsLayoutChild(box Box, all []Box) bool {
	_, ok := LayoutParent(box, all)
	return ok
}

// ChildrenOf returns the direct children of parent in layout order: the ids
// listed in parent.Children first, then any remaining boxes that point at
// parent, in slice order.
func ChildrenOf(parent Box, all []Box) []Box {
	var children []Box
	listed := make(map[string]bool, len(parent.Children))
	for _, id := range parent.Children {
		i := indexOf(all, id)
		if i < 0 || all[i].ParentID != parent.ID || listed[id] {
			continue
		}
		listed[id] = true
		children = append(children, all[i])
	}
	for _, b := range all {
		if b.ParentID == parent.ID && !listed[b.ID] {
			children = append(children, b)
		}
	}
	return children
}

// LayoutSiblings returns the other children of box's layout parent.
func LayoutSiblings(box Box, all []Box) []Box {
	parent, ok := LayoutParent(box, all)
	if !ok {
		return nil
	}
	var siblings []Box
	for _, c := range ChildrenOf(parent, all) {
		if c.ID != box.ID {
			siblings = append(siblings, c)
		}
	}
	return siblings
}

// ConstrainResize bounds a resize of box against its layout parent. Boxes
// that are not layout children come back unchanged with the requested size.
func ConstrainResize(box Box, newSize Size, all []Box) ConstraintResult {
	parent, ok := LayoutParent(box, all)
	if !ok {
		return ConstraintResult{Updates: []ChildPosition{{
			ID: box.ID, X: box.X, Y: box.Y, Width: newSize.Width, Height: newSize.Height,
		}}}
	}
	children := ChildrenOf(parent, all)
	switch parent.Layout.(type) {
	case FlexLayout:
		return ConstrainFlexResize(box, parent, newSize, children)
	case GridLayout:
		return ConstrainGridResize(box, parent, newSize, children)
	}
	return ConstraintResult{}
}

// ConstrainFlexResize clamps the main size of a flex child so its siblings
// keep at least their minimum size, then redistributes the line.
func ConstrainFlexResize(box, parent Box, newSize Size, allChildren []Box) ConstraintResult {
	cfg, ok := parent.Layout.(FlexLayout)
	if !ok {
		return ConstraintResult{}
	}
	children := allChildren
	if indexOf(children, box.ID) < 0 {
		children = append(append([]Box(nil), allChildren...), box)
	}

	ax := axes{row: cfg.Direction == Row}
	space := ContainerSpaceOf(parent, cfg.LayoutPadding)
	mainSpace := ax.main(space.Width, space.Height)
	minMain := ax.minMain()
	others := float64(len(children) - 1)

	maxAllowed := mainSpace - totalGaps(max(cfg.Gap, 0), len(children)) - others*minMain
	requested := ax.main(newSize.Width, newSize.Height)
	clamped := max(min(requested, maxAllowed), minMain)

	sized := newSize
	if ax.row {
		sized.Width = clamped
	} else {
		sized.Height = clamped
	}
	r := RedistributeFlex(parent, box.ID, sized, children, cfg)

	return ConstraintResult{
		IsLayoutChild: true,
		LayoutParent:  parent,
		Updates:       r.Positions,
		Overflow:      requested-maxAllowed > tolerance || r.Overflow,
	}
}

// ConstrainGridResize bounds a grid child by its own cell. Grid children
// never push their siblings around, so only the resized box is updated.
// A stretched axis is previewed from the cell start so the new size is
// visible.
func ConstrainGridResize(box, parent Box, newSize Size, allChildren []Box) ConstraintResult {
	cfg, ok := parent.Layout.(GridLayout)
	if !ok {
		return ConstraintResult{}
	}

	g := resolveGridCells(parent, cfg)
	size := Size{
		Width:  max(min(newSize.Width, g.cellWidth), MinWidth),
		Height: max(min(newSize.Height, g.cellHeight), MinHeight),
	}
	res := ConstraintResult{
		IsLayoutChild: true,
		LayoutParent:  parent,
		Overflow:      newSize.Width > g.cellWidth || newSize.Height > g.cellHeight,
	}

	i := indexOf(allChildren, box.ID)
	if i < 0 || i >= g.columns*g.rows {
		res.Updates = []ChildPosition{{ID: box.ID, X: box.X, Y: box.Y, Width: size.Width, Height: size.Height}}
		return res
	}

	alignX, alignY := gridAligns(cfg)
	if alignX == AlignStretch {
		alignX = AlignStart
	}
	if alignY == AlignStretch {
		alignY = AlignStart
	}
	res.Updates = []ChildPosition{g.cellPlacement(i, box.ID, size, alignX, alignY)}
	return res
}

// ConstrainMultiLayoutResize applies the size change of the first selected
// box to every selected sibling in the same flex container. Each box keeps
// its position and is clamped to its own minimum; unselected siblings are
// left alone.
func ConstrainMultiLayoutResize(boxIDs []string, newSize Size, allBoxes []Box) ConstraintResult {
	if len(boxIDs) == 0 {
		return ConstraintResult{}
	}
	fi := indexOf(allBoxes, boxIDs[0])
	if fi < 0 {
		return ConstraintResult{}
	}
	first := allBoxes[fi]
	parent, ok := LayoutParent(first, allBoxes)
	if !ok {
		return ConstraintResult{}
	}
	cfg, ok := parent.Layout.(FlexLayout)
	if !ok {
		return ConstraintResult{}
	}

	ax := axes{row: cfg.Direction == Row}
	delta := ax.main(newSize.Width, newSize.Height) - ax.main(first.Width, first.Height)
	res := ConstraintResult{IsLayoutChild: true, LayoutParent: parent}

	selected := make(map[string]bool, len(boxIDs))
	for _, id := range boxIDs {
		i := indexOf(allBoxes, id)
		if i < 0 || selected[id] || allBoxes[i].ParentID != first.ParentID {
			continue
		}
		selected[id] = true
		b := allBoxes[i]
		u := ChildPosition{ID: b.ID, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
		if ax.row {
			u.Width = max(b.Width+delta, MinWidth)
		} else {
			u.Height = max(b.Height+delta, MinHeight)
		}
		res.Updates = append(res.Updates, u)
	}

	children := ChildrenOf(parent, allBoxes)
	space := ContainerSpaceOf(parent, cfg.LayoutPadding)
	total := totalGaps(max(cfg.Gap, 0), len(children))
	for _, c := range children {
		main := ax.main(c.Width, c.Height)
		for _, u := range res.Updates {
			if u.ID == c.ID {
				main = ax.main(u.Width, u.Height)
			}
		}
		total += main
	}
	res.Overflow = total-ax.main(space.Width, space.Height) > tolerance
	return res
}
