package layout

import "go.uber.org/zap"

// CalculateFlex lays out children along a single flex line, or delegates to
// the wrapping variant when cfg.Wrap is set.
func CalculateFlex(container Box, children []Box, cfg FlexLayout) Result {
	if cfg.Wrap {
		return calculateFlexWrap(container, children, cfg)
	}
	if len(children) == 0 {
		return Result{}
	}

	ax := axes{row: cfg.Direction == Row}
	space := ContainerSpaceOf(container, cfg.LayoutPadding)
	mainSpace := ax.main(space.Width, space.Height)
	crossSpace := ax.cross(space.Width, space.Height)
	gap := max(cfg.Gap, 0)
	gaps := totalGaps(gap, len(children))

	sizes := flexMainSizes(children, cfg, ax, mainSpace-gaps)
	var content float64
	for _, s := range sizes {
		content += s
	}
	overflow := content+gaps-mainSpace > tolerance
	free := max(0, mainSpace-content-gaps)

	logger.Debug("flex line",
		zap.String("container", container.ID),
		zap.Float64("mainSpace", mainSpace),
		zap.Float64("content", content),
		zap.Float64("free", free),
		zap.Bool("overflow", overflow))

	start, step := distribute(cfg.JustifyContent, free, len(children), gap)
	align := resolveFlexAlign(cfg)

	positions := make([]ChildPosition, 0, len(children))
	cursor := start
	for i, child := range children {
		natural := naturalCross(child, cfg.ChildSizing, ax, crossSpace)
		crossPos, crossSize := crossPlacement(child.alignSelf(align), crossSpace, natural)
		positions = append(positions, ax.place(child.ID, space, cursor, crossPos, sizes[i], crossSize))
		cursor += sizes[i] + step
	}

	return Result{Positions: positions, Overflow: overflow}
}

// flexMainSizes resolves each child's main-axis size for a single line.
// available is the main space left after gaps.
func flexMainSizes(children []Box, cfg FlexLayout, ax axes, available float64) []float64 {
	sizes := make([]float64, len(children))
	minMain := ax.minMain()

	if cfg.ChildSizing.auto() || cfg.JustifyContent.distributes() {
		for i, child := range children {
			if basis, ok := child.flexBasis(); ok {
				sizes[i] = max(basis, minMain)
			} else {
				sizes[i] = minMain
			}
		}
		return sizes
	}

	var totalGrow float64
	for _, child := range children {
		totalGrow += max(child.flexGrow(), 0)
	}
	for i, child := range children {
		var share float64
		if totalGrow > 0 {
			share = available * max(child.flexGrow(), 0) / totalGrow
		}
		sizes[i] = max(share, minMain)
	}
	return sizes
}

// resolveFlexAlign returns the container-level cross alignment. An unset
// alignItems stretches in fill mode and starts in auto mode.
func resolveFlexAlign(cfg FlexLayout) Align {
	if cfg.AlignItems != AlignAuto {
		return cfg.AlignItems
	}
	if cfg.ChildSizing.auto() {
		return AlignStart
	}
	return AlignStretch
}

// distribute returns the offset of the first item and the distance between
// consecutive items (gap plus any distributed extra) for a justify keyword.
func distribute(j Justify, free float64, n int, gap float64) (start, step float64) {
	step = gap
	if n == 0 || free <= 0 {
		return 0, step
	}
	switch j {
	case JustifyEnd:
		start = free
	case JustifyCenter:
		start = free / 2
	case JustifyBetween:
		if n > 1 {
			step += free / float64(n-1)
		}
	case JustifyAround:
		extra := free / float64(n)
		start = extra / 2
		step += extra
	case JustifyEvenly:
		extra := free / float64(n+1)
		start = extra
		step += extra
	}
	return start, step
}

// naturalCross is the cross size a child keeps when it is not stretched:
// the minimum in auto mode, otherwise its stored cross size bounded by the
// available cross space.
func naturalCross(child Box, sizing Sizing, ax axes, crossSpace float64) float64 {
	minCross := ax.minCross()
	if sizing.auto() {
		return minCross
	}
	stored := ax.cross(child.Width, child.Height)
	return max(min(stored, crossSpace), minCross)
}

// crossPlacement positions an item of natural cross size inside a run of
// crossSpace.
func crossPlacement(align Align, crossSpace, natural float64) (pos, size float64) {
	switch align {
	case AlignStretch:
		return 0, crossSpace
	case AlignEnd:
		return max(0, crossSpace-natural), natural
	case AlignCenter:
		return max(0, (crossSpace-natural)/2), natural
	default:
		return 0, natural
	}
}
