package layout

import "go.uber.org/zap"

// gridCells holds the resolved cell geometry of a grid container.
type gridCells struct {
	space                 ContainerSpace
	columns, rows         int
	columnGap, rowGap     float64
	cellWidth, cellHeight float64
}

func resolveGridCells(container Box, cfg GridLayout) gridCells {
	space := ContainerSpaceOf(container, cfg.LayoutPadding)
	columns, rows := tracks(cfg.Columns), tracks(cfg.Rows)
	columnGap, rowGap := cfg.Gaps()
	return gridCells{
		space:      space,
		columns:    columns,
		rows:       rows,
		columnGap:  columnGap,
		rowGap:     rowGap,
		cellWidth:  (space.Width - float64(columns-1)*columnGap) / float64(columns),
		cellHeight: (space.Height - float64(rows-1)*rowGap) / float64(rows),
	}
}

// origin returns the top-left corner of the cell at (row, col).
func (g gridCells) origin(row, col int) Point {
	return Point{
		X: g.space.X + float64(col)*(g.cellWidth+g.columnGap),
		Y: g.space.Y + float64(row)*(g.cellHeight+g.rowGap),
	}
}

func (g gridCells) tooSmall() bool {
	return MinWidth-g.cellWidth > tolerance || MinHeight-g.cellHeight > tolerance
}

// cellPlacement positions a child inside the cell at index i.
func (g gridCells) cellPlacement(i int, id string, natural Size, alignX, alignY Align) ChildPosition {
	row, col := i/g.columns, i%g.columns
	o := g.origin(row, col)
	cw, ch := max(g.cellWidth, 0), max(g.cellHeight, 0)
	x, w := cellAxis(alignX, cw, natural.Width)
	y, h := cellAxis(alignY, ch, natural.Height)
	return ChildPosition{
		ID:     id,
		X:      o.X + x,
		Y:      o.Y + y,
		Width:  max(w, MinWidth),
		Height: max(h, MinHeight),
	}
}

// cellAxis aligns a natural size, clamped to the cell, along one cell axis.
func cellAxis(align Align, cell, natural float64) (pos, size float64) {
	if align == AlignStretch {
		return 0, cell
	}
	size = min(natural, cell)
	switch align {
	case AlignEnd:
		pos = cell - size
	case AlignCenter:
		pos = (cell - size) / 2
	}
	return pos, size
}

// gridAligns resolves the per-axis alignment for a grid: justifyItems
// drives the column (x) axis and alignItems the row (y) axis.
func gridAligns(cfg GridLayout) (alignX, alignY Align) {
	def := AlignStretch
	if cfg.ChildSizing.auto() {
		def = AlignStart
	}
	alignX, alignY = cfg.JustifyItems, cfg.AlignItems
	if alignX == AlignAuto {
		alignX = def
	}
	if alignY == AlignAuto {
		alignY = def
	}
	return alignX, alignY
}

func gridNatural(child Box, sizing Sizing) Size {
	if sizing.auto() {
		return Size{Width: MinWidth, Height: MinHeight}
	}
	return Size{Width: max(child.Width, MinWidth), Height: max(child.Height, MinHeight)}
}

// CalculateGrid assigns children to cells in row-major order. Children
// beyond rows*columns get no position and are reported in
// OverflowChildIDs; the grid never grows to fit them.
func CalculateGrid(container Box, children []Box, cfg GridLayout) Result {
	if len(children) == 0 {
		return Result{}
	}

	g := resolveGridCells(container, cfg)
	alignX, alignY := gridAligns(cfg)
	res := Result{Overflow: g.tooSmall()}

	cells := g.columns * g.rows
	for i, child := range children {
		if i >= cells {
			res.OverflowChildIDs = append(res.OverflowChildIDs, child.ID)
			continue
		}
		res.Positions = append(res.Positions,
			g.cellPlacement(i, child.ID, gridNatural(child, cfg.ChildSizing), alignX, alignY))
	}
	if len(res.OverflowChildIDs) > 0 {
		res.Overflow = true
	}

	logger.Debug("grid",
		zap.String("container", container.ID),
		zap.Int("columns", g.columns),
		zap.Int("rows", g.rows),
		zap.Float64("cellWidth", g.cellWidth),
		zap.Float64("cellHeight", g.cellHeight),
		zap.Int("unplaced", len(res.OverflowChildIDs)))

	return res
}
