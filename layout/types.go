// Package layout computes positions and sizes for the direct children of a
// container box under a flex or grid configuration.
//
// Every function in this package is pure: it reads boxes and returns
// proposed geometry without touching any store. Computed positions are
// always local to the container box (relative to its own top-left corner);
// converting them to absolute or parent-relative coordinates is the
// caller's responsibility.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Minimum box dimensions. Every computed child satisfies these even when the
// container has no room for it.
const (
	MinWidth  = 20.0
	MinHeight = 20.0
)

// DragOutsideMargin is how far a dragged child's centre may leave its
// parent's content rectangle before it is considered dragged out.
const DragOutsideMargin = 20.0

// Kind identifies the variant of a Config.
type Kind string

const (
	KindNone Kind = "none"
	KindFlex Kind = "flex"
	KindGrid Kind = "grid"
)

// Direction determines the main axis for flex layout.
type Direction int

const (
	Row Direction = iota
	Column
)

func (d Direction) String() string {
	if d == Column {
		return "column"
	}
	return "row"
}

// Justify distributes free space along an axis. It is used for
// justifyContent (items along the main axis) and alignContent (lines along
// the cross axis).
type Justify int

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifyBetween
	JustifyAround
	JustifyEvenly
)

var justifyNames = map[Justify]string{
	JustifyStart:   "start",
	JustifyEnd:     "end",
	JustifyCenter:  "center",
	JustifyBetween: "space-between",
	JustifyAround:  "space-around",
	JustifyEvenly:  "space-evenly",
}

func (j Justify) String() string {
	if name, ok := justifyNames[j]; ok {
		return name
	}
	return "start"
}

// distributes reports whether j spreads extra space between items rather
// than offsetting the whole run.
func (j Justify) distributes() bool {
	return j == JustifyBetween || j == JustifyAround || j == JustifyEvenly
}

// ParseJustify accepts the CSS keywords and the short tailwind-style forms
// ("between", "around", "evenly").
func ParseJustify(s string) (Justify, error) {
	switch strings.ToLower(s) {
	case "start", "flex-start":
		return JustifyStart, nil
	case "end", "flex-end":
		return JustifyEnd, nil
	case "center":
		return JustifyCenter, nil
	case "space-between", "between":
		return JustifyBetween, nil
	case "space-around", "around":
		return JustifyAround, nil
	case "space-evenly", "evenly":
		return JustifyEvenly, nil
	}
	return JustifyStart, fmt.Errorf("unknown justify value %q", s)
}

// Align positions an item along the cross axis (flex) or inside its cell
// (grid).
type Align int

const (
	// AlignAuto defers to the container. For alignSelf it means "use
	// alignItems"; for grid alignItems/justifyItems it means "stretch in fill
	// mode, start in auto mode".
	AlignAuto Align = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignStretch
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignCenter:
		return "center"
	case AlignStretch:
		return "stretch"
	}
	return "auto"
}

// ParseAlign parses an alignment keyword.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(s) {
	case "auto":
		return AlignAuto, nil
	case "start", "flex-start":
		return AlignStart, nil
	case "end", "flex-end":
		return AlignEnd, nil
	case "center":
		return AlignCenter, nil
	case "stretch":
		return AlignStretch, nil
	}
	return AlignAuto, fmt.Errorf("unknown align value %q", s)
}

// Sizing is the childSizingMode of a container.
type Sizing int

const (
	// SizingDefault resolves to SizingFill.
	SizingDefault Sizing = iota
	// SizingAuto keeps children at their minimum size and distributes the
	// leftover space through justify/align.
	SizingAuto
	// SizingFill grows children to consume the available space.
	SizingFill
)

func (s Sizing) auto() bool { return s == SizingAuto }

func (s Sizing) String() string {
	if s == SizingAuto {
		return "auto"
	}
	return "fill"
}

// Edges holds a per-side inset.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns Edges with the same inset on every side.
func Uniform(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

func (e Edges) finite() bool {
	return finite(e.Top) && finite(e.Right) && finite(e.Bottom) && finite(e.Left)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cloneEdges(e *Edges) *Edges {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Config is a container's layout configuration. The only implementations
// are NoLayout, FlexLayout and GridLayout; a nil Config means no layout.
type Config interface {
	Kind() Kind
	sealed()
}

// NoLayout disables automatic layout.
type NoLayout struct{}

func (NoLayout) Kind() Kind { return KindNone }
func (NoLayout) sealed()    {}

// FlexLayout lays children out in sequence along a main axis.
type FlexLayout struct {
	Direction      Direction
	Gap            float64
	AlignItems     Align
	JustifyContent Justify
	Wrap           bool
	// AlignContent distributes wrapped lines along the cross axis.
	AlignContent  Justify
	ChildSizing   Sizing
	LayoutPadding *Edges
}

func (FlexLayout) Kind() Kind { return KindFlex }
func (FlexLayout) sealed()    {}

// DefaultFlex is the flex configuration a container gets when it switches
// to flex without further settings.
func DefaultFlex() FlexLayout {
	return FlexLayout{Direction: Row, Gap: 8}
}

// GridLayout places children into a fixed columns x rows grid.
type GridLayout struct {
	Columns       int
	Rows          int
	Gap           float64
	ColumnGap     *float64
	RowGap        *float64
	AlignItems    Align
	JustifyItems  Align
	ChildSizing   Sizing
	LayoutPadding *Edges
}

func (GridLayout) Kind() Kind { return KindGrid }
func (GridLayout) sealed()    {}

// DefaultGrid is the grid configuration a container gets when it switches
// to grid without further settings.
func DefaultGrid() GridLayout {
	return GridLayout{Columns: 2, Rows: 2, Gap: 8}
}

// Gaps returns the effective column and row gaps.
func (g GridLayout) Gaps() (columnGap, rowGap float64) {
	columnGap, rowGap = g.Gap, g.Gap
	if g.ColumnGap != nil {
		columnGap = *g.ColumnGap
	}
	if g.RowGap != nil {
		rowGap = *g.RowGap
	}
	return max(columnGap, 0), max(rowGap, 0)
}

// MaxGridTracks bounds the number of columns and of rows in a grid.
const MaxGridTracks = 1000

// tracks clamps a column or row count into [1, MaxGridTracks].
func tracks(n int) int {
	return min(max(n, 1), MaxGridTracks)
}

// Cells returns the number of cells in the grid.
func (g GridLayout) Cells() int {
	return tracks(g.Columns) * tracks(g.Rows)
}

// CloneConfig returns a copy of cfg that shares no memory with it.
func CloneConfig(cfg Config) Config {
	switch c := cfg.(type) {
	case FlexLayout:
		c.LayoutPadding = cloneEdges(c.LayoutPadding)
		return c
	case GridLayout:
		c.LayoutPadding = cloneEdges(c.LayoutPadding)
		c.ColumnGap = clonePtr(c.ColumnGap)
		c.RowGap = clonePtr(c.RowGap)
		return c
	}
	return cfg
}

var (
	ErrInvalidGrid = errors.New("grid needs between 1 and 1000 columns and rows")
	ErrNegativeGap = errors.New("gap must not be negative")
	ErrNonFinite   = errors.New("layout values must be finite")
)

// Validate checks the invariants of a configuration. Resolvers never fail on
// invalid input, they clamp instead; Validate exists for producers such as
// the command parser.
func Validate(cfg Config) error {
	switch c := cfg.(type) {
	case nil, NoLayout:
		return nil
	case FlexLayout:
		if !finite(c.Gap) || (c.LayoutPadding != nil && !c.LayoutPadding.finite()) {
			return ErrNonFinite
		}
		if c.Gap < 0 {
			return ErrNegativeGap
		}
	case GridLayout:
		if c.Columns < 1 || c.Rows < 1 || c.Columns > MaxGridTracks || c.Rows > MaxGridTracks {
			return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, c.Columns, c.Rows)
		}
		cg, rg := c.Gap, c.Gap
		if c.ColumnGap != nil {
			cg = *c.ColumnGap
		}
		if c.RowGap != nil {
			rg = *c.RowGap
		}
		if !finite(c.Gap) || !finite(cg) || !finite(rg) || (c.LayoutPadding != nil && !c.LayoutPadding.finite()) {
			return ErrNonFinite
		}
		if c.Gap < 0 || cg < 0 || rg < 0 {
			return ErrNegativeGap
		}
	}
	return nil
}

// KindOf returns the kind of cfg, treating nil as KindNone.
func KindOf(cfg Config) Kind {
	if cfg == nil {
		return KindNone
	}
	return cfg.Kind()
}

// ChildProps are per-child layout hints.
type ChildProps struct {
	// FlexGrow defaults to 1 when nil.
	FlexGrow *float64
	// FlexBasis is a numeric main size ("120" or "120px"). Empty or "auto"
	// means unset.
	FlexBasis string
	AlignSelf Align
}

// Clone returns a copy of p that shares no memory with it.
func (p ChildProps) Clone() *ChildProps {
	p.FlexGrow = clonePtr(p.FlexGrow)
	return &p
}

// Box is a rectangle on the canvas. X and Y are relative to the parent box,
// or to the artboard when the box has no parent.
type Box struct {
	ID          string
	X, Y        float64
	Width       float64
	Height      float64
	BorderStyle string
	Padding     float64
	ParentID    string
	ArtboardID  string
	// Children lists the ids of direct children in layout order.
	Children         []string
	Layout           Config
	LayoutChildProps *ChildProps
}

// HasLayout reports whether the box acts as a layout container.
func (b Box) HasLayout() bool {
	return KindOf(b.Layout) != KindNone
}

func (b Box) flexGrow() float64 {
	if b.LayoutChildProps != nil && b.LayoutChildProps.FlexGrow != nil {
		return *b.LayoutChildProps.FlexGrow
	}
	return 1
}

func (b Box) flexBasis() (float64, bool) {
	if b.LayoutChildProps == nil {
		return 0, false
	}
	s := strings.TrimSpace(b.LayoutChildProps.FlexBasis)
	s = strings.TrimSuffix(s, "px")
	if s == "" || s == "auto" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func (b Box) alignSelf(fallback Align) Align {
	if b.LayoutChildProps != nil && b.LayoutChildProps.AlignSelf != AlignAuto {
		return b.LayoutChildProps.AlignSelf
	}
	return fallback
}

// Point is a position in a container's local frame.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// ChildPosition is the computed geometry of one child, local to its
// container.
type ChildPosition struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Result is the output of a layout calculation.
type Result struct {
	Positions []ChildPosition
	// Overflow is set when non-wrapping flex content exceeds the main axis,
	// when grid cells fall below the minimum size, or when a grid has more
	// children than cells.
	Overflow bool
	// OverflowChildIDs lists grid children that did not get a cell.
	OverflowChildIDs []string
}

// Position returns the computed position for id.
func (r Result) Position(id string) (ChildPosition, bool) {
	for _, p := range r.Positions {
		if p.ID == id {
			return p, true
		}
	}
	return ChildPosition{}, false
}
