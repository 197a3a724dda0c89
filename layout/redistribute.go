package layout

import (
	"sort"

	"go.uber.org/zap"
)

// RedistributeFlex recomputes a flex line after one child has been resized
// interactively. The resized child takes the main size of newSize verbatim
// (clamping is the constraint layer's job); every other child gets an equal
// share of what remains, never less than the minimum main size.
//
// Children are laid out in their current visual order along the main axis,
// not in slice order, so siblings keep their places during the drag. An
// unknown resizedID falls back to CalculateFlex.
func RedistributeFlex(container Box, resizedID string, newSize Size, children []Box, cfg FlexLayout) Result {
	if indexOf(children, resizedID) < 0 {
		return CalculateFlex(container, children, cfg)
	}

	ax := axes{row: cfg.Direction == Row}
	space := ContainerSpaceOf(container, cfg.LayoutPadding)
	mainSpace := ax.main(space.Width, space.Height)
	crossSpace := ax.cross(space.Width, space.Height)
	gap := max(cfg.Gap, 0)
	gaps := totalGaps(gap, len(children))
	minMain := ax.minMain()

	resizedMain := ax.main(newSize.Width, newSize.Height)
	otherCount := len(children) - 1
	remaining := mainSpace - gaps - resizedMain
	otherSize := minMain
	if otherCount > 0 {
		otherSize = max(minMain, remaining/float64(otherCount))
	}
	overflow := float64(otherCount)*minMain-remaining > tolerance

	content := resizedMain + float64(otherCount)*otherSize
	free := max(0, mainSpace-content-gaps)
	start, step := distribute(cfg.JustifyContent, free, len(children), gap)

	logger.Debug("redistribute",
		zap.String("container", container.ID),
		zap.String("resized", resizedID),
		zap.Float64("resizedMain", resizedMain),
		zap.Float64("otherSize", otherSize),
		zap.Bool("overflow", overflow))

	ordered := sortedByMain(children, ax)
	align := resolveFlexAlign(cfg)
	positions := make([]ChildPosition, 0, len(ordered))
	cursor := start
	for _, child := range ordered {
		size := otherSize
		if child.ID == resizedID {
			size = resizedMain
			child.Width, child.Height = newSize.Width, newSize.Height
		}
		natural := naturalCross(child, cfg.ChildSizing, ax, crossSpace)
		crossPos, crossSize := crossPlacement(child.alignSelf(align), crossSpace, natural)
		positions = append(positions, ax.place(child.ID, space, cursor, crossPos, size, crossSize))
		cursor += size + step
	}

	return Result{Positions: positions, Overflow: overflow}
}

// sortedByMain returns a copy of children ordered by their current main-axis
// position. Ties keep slice order.
func sortedByMain(children []Box, ax axes) []Box {
	ordered := make([]Box, len(children))
	copy(ordered, children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ax.main(ordered[i].X, ordered[i].Y) < ax.main(ordered[j].X, ordered[j].Y)
	})
	return ordered
}

func indexOf(boxes []Box, id string) int {
	for i, b := range boxes {
		if b.ID == id {
			return i
		}
	}
	return -1
}
