package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/boxlayout/layout"
)

// Format renders cfg as a command that Parse turns back into cfg. Values
// equal to the kind's defaults are omitted.
func Format(cfg layout.Config) string {
	switch c := cfg.(type) {
	case layout.FlexLayout:
		return formatFlex(c)
	case layout.GridLayout:
		return formatGrid(c)
	}
	return "none"
}

func formatFlex(c layout.FlexLayout) string {
	def := layout.DefaultFlex()
	parts := []string{"flex", c.Direction.String()}
	if c.Wrap {
		parts = append(parts, "wrap")
	}
	if c.Gap != def.Gap {
		parts = append(parts, "gap="+num(c.Gap))
	}
	if c.JustifyContent != def.JustifyContent {
		parts = append(parts, "justify="+c.JustifyContent.String())
	}
	if c.AlignItems != def.AlignItems {
		parts = append(parts, "align="+c.AlignItems.String())
	}
	if c.AlignContent != def.AlignContent {
		parts = append(parts, "content="+c.AlignContent.String())
	}
	parts = appendShared(parts, c.ChildSizing, c.LayoutPadding)
	return strings.Join(parts, " ")
}

func formatGrid(c layout.GridLayout) string {
	def := layout.DefaultGrid()
	parts := []string{"grid", fmt.Sprintf("%dx%d", c.Columns, c.Rows)}
	if c.Gap != def.Gap {
		parts = append(parts, "gap="+num(c.Gap))
	}
	if c.ColumnGap != nil {
		parts = append(parts, "colgap="+num(*c.ColumnGap))
	}
	if c.RowGap != nil {
		parts = append(parts, "rowgap="+num(*c.RowGap))
	}
	if c.AlignItems != def.AlignItems {
		parts = append(parts, "align="+c.AlignItems.String())
	}
	if c.JustifyItems != def.JustifyItems {
		parts = append(parts, "items="+c.JustifyItems.String())
	}
	parts = appendShared(parts, c.ChildSizing, c.LayoutPadding)
	return strings.Join(parts, " ")
}

func appendShared(parts []string, sizing layout.Sizing, padding *layout.Edges) []string {
	if sizing != layout.SizingDefault {
		parts = append(parts, "sizing="+sizing.String())
	}
	if padding != nil {
		p := *padding
		if p == layout.Uniform(p.Top) {
			parts = append(parts, "padding="+num(p.Top))
		} else {
			parts = append(parts, "padding="+strings.Join([]string{num(p.Top), num(p.Right), num(p.Bottom), num(p.Left)}, ","))
		}
	}
	return parts
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
