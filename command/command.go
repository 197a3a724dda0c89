// Package command parses short layout commands such as "flex row 3 gap=8"
// or "grid 3x2 items=center" into a layout configuration and a child count.
//
// Grammar:
//
//	none
//	flex [row|column|col] [N] [wrap] [key=value ...]
//	grid CxR [N] [key=value ...]
//
// Keys: gap, colgap, rowgap, justify, align, content, items, sizing,
// padding (N or T,R,B,L) and wrap.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agiangrant/boxlayout/canvas"
	"github.com/agiangrant/boxlayout/layout"
)

var ErrInvalidCommand = errors.New("invalid layout command")

// MaxChildren bounds both an explicit child count and the number of cells
// in a grid command.
const MaxChildren = 10000

// Command is a parsed layout command.
type Command struct {
	Config layout.Config
	// Count is the requested number of children, 0 when not given.
	Count int
}

// Children returns the number of children to create. A grid without an
// explicit count fills every cell; anything else falls back to def.
func (c Command) Children(def int) int {
	if c.Count > 0 {
		return c.Count
	}
	if g, ok := c.Config.(layout.GridLayout); ok {
		return g.Cells()
	}
	return def
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCommand, fmt.Sprintf(format, args...))
}

// Parse parses a layout command. Keywords are case-insensitive.
func Parse(s string) (Command, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Command{}, invalid("empty command")
	}

	var (
		cmd Command
		err error
	)
	switch fields[0] {
	case "none":
		if len(fields) > 1 {
			return Command{}, invalid("none takes no arguments")
		}
		return Command{Config: layout.NoLayout{}}, nil
	case "flex":
		cmd, err = parseFlex(fields[1:])
	case "grid":
		cmd, err = parseGrid(fields[1:])
	default:
		return Command{}, invalid("unknown layout %q", fields[0])
	}
	if err != nil {
		return Command{}, err
	}
	if err := layout.Validate(cmd.Config); err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return cmd, nil
}

func parseFlex(args []string) (Command, error) {
	kind := layout.KindFlex
	patch := canvas.LayoutPatch{Type: &kind}
	var cmd Command

	for _, arg := range args {
		switch {
		case arg == "row":
			d := layout.Row
			patch.Direction = &d
		case arg == "column" || arg == "col":
			d := layout.Column
			patch.Direction = &d
		case arg == "wrap":
			wrap := true
			patch.Wrap = &wrap
		case strings.Contains(arg, "="):
			if err := applyOption(&patch, arg, layout.KindFlex); err != nil {
				return Command{}, err
			}
		default:
			if err := parseCount(&cmd, arg); err != nil {
				return Command{}, err
			}
		}
	}

	cmd.Config = patch.Apply(layout.DefaultFlex())
	return cmd, nil
}

func parseGrid(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("grid needs dimensions, e.g. grid 3x2")
	}
	cols, rows, err := parseDimensions(args[0])
	if err != nil {
		return Command{}, err
	}

	kind := layout.KindGrid
	patch := canvas.LayoutPatch{Type: &kind, Columns: &cols, Rows: &rows}
	var cmd Command

	for _, arg := range args[1:] {
		if strings.Contains(arg, "=") {
			if err := applyOption(&patch, arg, layout.KindGrid); err != nil {
				return Command{}, err
			}
			continue
		}
		if err := parseCount(&cmd, arg); err != nil {
			return Command{}, err
		}
	}

	cmd.Config = patch.Apply(layout.DefaultGrid())
	return cmd, nil
}

// parseDimensions parses "CxR".
func parseDimensions(s string) (cols, rows int, err error) {
	c, r, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, invalid("grid dimensions %q must look like 3x2", s)
	}
	cols, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, invalid("grid columns %q", c)
	}
	rows, err = strconv.Atoi(r)
	if err != nil {
		return 0, 0, invalid("grid rows %q", r)
	}
	if cols > layout.MaxGridTracks || rows > layout.MaxGridTracks {
		return 0, 0, invalid("grid %s exceeds %d columns or rows", s, layout.MaxGridTracks)
	}
	if cols > 0 && rows > 0 && cols*rows > MaxChildren {
		return 0, 0, invalid("grid %s has more than %d cells", s, MaxChildren)
	}
	return cols, rows, nil
}

func parseCount(cmd *Command, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return invalid("unexpected %q", arg)
	}
	if cmd.Count != 0 {
		return invalid("child count given twice")
	}
	if n < 1 || n > MaxChildren {
		return invalid("child count must be between 1 and %d, got %d", MaxChildren, n)
	}
	cmd.Count = n
	return nil
}

func applyOption(p *canvas.LayoutPatch, arg string, kind layout.Kind) error {
	key, value, _ := strings.Cut(arg, "=")
	if value == "" {
		return invalid("%s needs a value", key)
	}

	switch key {
	case "gap":
		v, err := parseLength(key, value)
		if err != nil {
			return err
		}
		p.Gap = &v
	case "colgap", "rowgap":
		if kind != layout.KindGrid {
			return invalid("%s only applies to grid", key)
		}
		v, err := parseLength(key, value)
		if err != nil {
			return err
		}
		if key == "colgap" {
			p.ColumnGap = &v
		} else {
			p.RowGap = &v
		}
	case "justify":
		if kind != layout.KindFlex {
			return invalid("justify only applies to flex, use items for grid")
		}
		j, err := layout.ParseJustify(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		p.JustifyContent = &j
	case "content":
		if kind != layout.KindFlex {
			return invalid("content only applies to flex")
		}
		j, err := layout.ParseJustify(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		p.AlignContent = &j
	case "align":
		a, err := layout.ParseAlign(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		p.AlignItems = &a
	case "items":
		if kind != layout.KindGrid {
			return invalid("items only applies to grid")
		}
		a, err := layout.ParseAlign(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		p.JustifyItems = &a
	case "sizing":
		var s layout.Sizing
		switch value {
		case "auto":
			s = layout.SizingAuto
		case "fill":
			s = layout.SizingFill
		default:
			return invalid("sizing must be auto or fill, got %q", value)
		}
		p.ChildSizing = &s
	case "padding":
		e, err := parsePadding(value)
		if err != nil {
			return err
		}
		p.LayoutPadding = &e
	case "wrap":
		if kind != layout.KindFlex {
			return invalid("wrap only applies to flex")
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid("wrap must be true or false, got %q", value)
		}
		p.Wrap = &b
	default:
		return invalid("unknown option %q", key)
	}
	return nil
}

func parseLength(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("%s %q is not a number", key, value)
	}
	if v < 0 {
		return 0, invalid("%s must not be negative", key)
	}
	return v, nil
}

// parsePadding accepts a single inset or four comma-separated insets in
// top,right,bottom,left order.
func parsePadding(value string) (layout.Edges, error) {
	parts := strings.Split(value, ",")
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := parseLength("padding", part)
		if err != nil {
			return layout.Edges{}, err
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return layout.Uniform(vals[0]), nil
	case 4:
		return layout.Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return layout.Edges{}, invalid("padding takes 1 or 4 values, got %d", len(vals))
}
