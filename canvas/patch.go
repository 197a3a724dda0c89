package canvas

import "github.com/agiangrant/boxlayout/layout"

// LayoutPatch is a partial layout config update. Nil fields keep the current
// value. Fields that don't apply to the resulting kind are ignored.
type LayoutPatch struct {
	Type           *layout.Kind
	Direction      *layout.Direction
	Gap            *float64
	AlignItems     *layout.Align
	JustifyContent *layout.Justify
	Wrap           *bool
	AlignContent   *layout.Justify
	ChildSizing    *layout.Sizing
	LayoutPadding  *layout.Edges
	Columns        *int
	Rows           *int
	ColumnGap      *float64
	RowGap         *float64
	JustifyItems   *layout.Align
}

// Apply merges the patch into cfg. Switching kind starts from the new kind's
// defaults and carries over the settings both kinds share (gap, padding,
// child sizing and item alignment).
func (p LayoutPatch) Apply(cfg layout.Config) layout.Config {
	kind := layout.KindOf(cfg)
	if p.Type != nil {
		kind = *p.Type
	}

	switch kind {
	case layout.KindFlex:
		f, ok := cfg.(layout.FlexLayout)
		if !ok {
			f = layout.DefaultFlex()
			carryShared(cfg, &f.Gap, &f.LayoutPadding, &f.ChildSizing, &f.AlignItems)
		}
		p.mergeShared(&f.Gap, &f.LayoutPadding, &f.ChildSizing, &f.AlignItems)
		if p.Direction != nil {
			f.Direction = *p.Direction
		}
		if p.JustifyContent != nil {
			f.JustifyContent = *p.JustifyContent
		}
		if p.Wrap != nil {
			f.Wrap = *p.Wrap
		}
		if p.AlignContent != nil {
			f.AlignContent = *p.AlignContent
		}
		return f

	case layout.KindGrid:
		g, ok := cfg.(layout.GridLayout)
		if !ok {
			g = layout.DefaultGrid()
			carryShared(cfg, &g.Gap, &g.LayoutPadding, &g.ChildSizing, &g.AlignItems)
		}
		p.mergeShared(&g.Gap, &g.LayoutPadding, &g.ChildSizing, &g.AlignItems)
		if p.Columns != nil {
			g.Columns = *p.Columns
		}
		if p.Rows != nil {
			g.Rows = *p.Rows
		}
		if p.ColumnGap != nil {
			v := *p.ColumnGap
			g.ColumnGap = &v
		}
		if p.RowGap != nil {
			v := *p.RowGap
			g.RowGap = &v
		}
		if p.JustifyItems != nil {
			g.JustifyItems = *p.JustifyItems
		}
		return g
	}
	return layout.NoLayout{}
}

func (p LayoutPatch) mergeShared(gap *float64, padding **layout.Edges, sizing *layout.Sizing, align *layout.Align) {
	if p.Gap != nil {
		*gap = *p.Gap
	}
	if p.LayoutPadding != nil {
		e := *p.LayoutPadding
		*padding = &e
	}
	if p.ChildSizing != nil {
		*sizing = *p.ChildSizing
	}
	if p.AlignItems != nil {
		*align = *p.AlignItems
	}
}

func carryShared(from layout.Config, gap *float64, padding **layout.Edges, sizing *layout.Sizing, align *layout.Align) {
	switch c := from.(type) {
	case layout.FlexLayout:
		*gap, *padding, *sizing, *align = c.Gap, c.LayoutPadding, c.ChildSizing, c.AlignItems
	case layout.GridLayout:
		*gap, *padding, *sizing, *align = c.Gap, c.LayoutPadding, c.ChildSizing, c.AlignItems
	}
}
