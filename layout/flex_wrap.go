package layout

import "go.uber.org/zap"

// flexLine is a run of children that share one line of a wrapping flex
// container.
type flexLine struct {
	start, end int // indices into the child slice, end exclusive
	mainTotal  float64
	crossMax   float64
}

func (l flexLine) count() int { return l.end - l.start }

// calculateFlexWrap packs children greedily into lines, distributes the
// lines along the cross axis with alignContent, and lays each line out like
// a single flex line scoped to its own children.
func calculateFlexWrap(container Box, children []Box, cfg FlexLayout) Result {
	if len(children) == 0 {
		return Result{}
	}

	ax := axes{row: cfg.Direction == Row}
	space := ContainerSpaceOf(container, cfg.LayoutPadding)
	mainSpace := ax.main(space.Width, space.Height)
	crossSpace := ax.cross(space.Width, space.Height)
	gap := max(cfg.Gap, 0)
	grows := !cfg.ChildSizing.auto() && !cfg.JustifyContent.distributes()

	mainSizes := make([]float64, len(children))
	crossSizes := make([]float64, len(children))
	for i, child := range children {
		mainSizes[i] = wrapItemMain(child, cfg, ax)
		crossSizes[i] = naturalCross(child, cfg.ChildSizing, ax, crossSpace)
	}

	var lines []flexLine
	line := flexLine{}
	for i := range children {
		gapForItem := 0.0
		if line.count() > 0 {
			gapForItem = gap
		}
		if line.count() > 0 && line.mainTotal+gapForItem+mainSizes[i] > mainSpace {
			lines = append(lines, line)
			line = flexLine{start: i, end: i}
			gapForItem = 0
		}
		line.mainTotal += gapForItem + mainSizes[i]
		line.crossMax = max(line.crossMax, crossSizes[i])
		line.end = i + 1
	}
	lines = append(lines, line)

	if grows {
		for _, l := range lines {
			growLine(children[l.start:l.end], mainSizes[l.start:l.end], mainSpace-l.mainTotal)
		}
	}

	var linesTotal float64
	for _, l := range lines {
		linesTotal += l.crossMax
	}
	linesTotal += totalGaps(gap, len(lines))
	crossStart, crossStep := distribute(cfg.AlignContent, max(0, crossSpace-linesTotal), len(lines), gap)

	logger.Debug("flex wrap",
		zap.String("container", container.ID),
		zap.Int("lines", len(lines)),
		zap.Float64("linesTotal", linesTotal),
		zap.Float64("crossSpace", crossSpace))

	align := resolveFlexAlign(cfg)
	positions := make([]ChildPosition, 0, len(children))
	crossCursor := crossStart
	for _, l := range lines {
		var lineMain float64
		for i := l.start; i < l.end; i++ {
			lineMain += mainSizes[i]
		}
		free := max(0, mainSpace-lineMain-totalGaps(gap, l.count()))
		mainCursor, mainStep := distribute(cfg.JustifyContent, free, l.count(), gap)

		for i := l.start; i < l.end; i++ {
			child := children[i]
			crossPos, crossSize := crossPlacement(child.alignSelf(align), l.crossMax, crossSizes[i])
			positions = append(positions,
				ax.place(child.ID, space, mainCursor, crossCursor+crossPos, mainSizes[i], crossSize))
			mainCursor += mainSizes[i] + mainStep
		}
		crossCursor += l.crossMax + crossStep
	}

	return Result{Positions: positions}
}

// wrapItemMain is the main size an item occupies before lines are formed.
func wrapItemMain(child Box, cfg FlexLayout, ax axes) float64 {
	minMain := ax.minMain()
	if basis, ok := child.flexBasis(); ok {
		return max(basis, minMain)
	}
	if cfg.ChildSizing.auto() || cfg.JustifyContent.distributes() {
		return minMain
	}
	return max(ax.main(child.Width, child.Height), minMain)
}

// growLine hands a line's free space to its items by flex-grow.
func growLine(children []Box, sizes []float64, free float64) {
	if free <= 0 {
		return
	}
	var totalGrow float64
	for _, child := range children {
		totalGrow += max(child.flexGrow(), 0)
	}
	if totalGrow <= 0 {
		return
	}
	for i, child := range children {
		sizes[i] += free * max(child.flexGrow(), 0) / totalGrow
	}
}
