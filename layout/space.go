package layout

import "go.uber.org/zap"

var logger = zap.NewNop()

// tolerance absorbs floating point drift when comparing summed sizes
// against the available space.
const tolerance = 1e-6

// SetLogger installs the logger used for layout debug output. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("layout")
}

// ContainerSpace is the content rectangle of a container in its own local
// frame.
type ContainerSpace struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x-coordinate of the right edge.
func (s ContainerSpace) Right() float64 { return s.X + s.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (s ContainerSpace) Bottom() float64 { return s.Y + s.Height }

// BorderWidth returns the border thickness drawn for a border style.
func BorderWidth(style string) float64 {
	if style == "double" {
		return 4
	}
	return 2
}

// ContainerSpaceOf returns the usable space inside container after border,
// padding and the optional per-side layout padding.
func ContainerSpaceOf(container Box, layoutPadding *Edges) ContainerSpace {
	offset := BorderWidth(container.BorderStyle) + container.Padding
	var lp Edges
	if layoutPadding != nil {
		lp = *layoutPadding
	}
	return ContainerSpace{
		X:      offset + lp.Left,
		Y:      offset + lp.Top,
		Width:  max(0, container.Width-2*offset-lp.Left-lp.Right),
		Height: max(0, container.Height-2*offset-lp.Top-lp.Bottom),
	}
}

// axes maps main/cross sizes onto width/height for a flex direction.
type axes struct {
	row bool
}

func (a axes) main(w, h float64) float64 {
	if a.row {
		return w
	}
	return h
}

func (a axes) cross(w, h float64) float64 {
	if a.row {
		return h
	}
	return w
}

func (a axes) minMain() float64 { return a.main(MinWidth, MinHeight) }

func (a axes) minCross() float64 { return a.cross(MinWidth, MinHeight) }

// place converts main/cross coordinates into a ChildPosition, flooring the
// size to the minimum box.
func (a axes) place(id string, space ContainerSpace, mainPos, crossPos, mainSize, crossSize float64) ChildPosition {
	p := ChildPosition{ID: id}
	if a.row {
		p.X, p.Y = space.X+mainPos, space.Y+crossPos
		p.Width, p.Height = mainSize, crossSize
	} else {
		p.X, p.Y = space.X+crossPos, space.Y+mainPos
		p.Width, p.Height = crossSize, mainSize
	}
	p.Width = max(p.Width, MinWidth)
	p.Height = max(p.Height, MinHeight)
	return p
}

func totalGaps(gap float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return gap * float64(n-1)
}
