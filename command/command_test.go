package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/boxlayout/layout"
)

func ptr[T any](v T) *T { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{
			name:  "none",
			input: "none",
			want:  Command{Config: layout.NoLayout{}},
		},
		{
			name:  "bare flex",
			input: "flex",
			want:  Command{Config: layout.DefaultFlex()},
		},
		{
			name:  "flex row with count",
			input: "flex row 3 gap=10",
			want:  Command{Config: layout.FlexLayout{Direction: layout.Row, Gap: 10}, Count: 3},
		},
		{
			name:  "flex column wrap",
			input: "Flex COL wrap 6 gap=4 content=between",
			want: Command{Config: layout.FlexLayout{
				Direction: layout.Column, Gap: 4, Wrap: true, AlignContent: layout.JustifyBetween,
			}, Count: 6},
		},
		{
			name:  "flex alignment and sizing",
			input: "flex justify=space-evenly align=center sizing=auto padding=4",
			want: Command{Config: layout.FlexLayout{
				Gap: 8, JustifyContent: layout.JustifyEvenly, AlignItems: layout.AlignCenter,
				ChildSizing: layout.SizingAuto, LayoutPadding: ptr(layout.Uniform(4)),
			}},
		},
		{
			name:  "wrap option",
			input: "flex wrap=false",
			want:  Command{Config: layout.DefaultFlex()},
		},
		{
			name:  "grid",
			input: "grid 3x2",
			want:  Command{Config: layout.GridLayout{Columns: 3, Rows: 2, Gap: 8}},
		},
		{
			name:  "grid options",
			input: "grid 2x4 5 gap=0 colgap=6 items=end align=start padding=1,2,3,4",
			want: Command{Config: layout.GridLayout{
				Columns: 2, Rows: 4, ColumnGap: ptr(6.0),
				JustifyItems: layout.AlignEnd, AlignItems: layout.AlignStart,
				LayoutPadding: &layout.Edges{Top: 1, Right: 2, Bottom: 3, Left: 4},
			}, Count: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"stack",
		"none 3",
		"flex 0",
		"flex 2 3",
		"flex diagonal",
		"flex gap=-1",
		"flex gap=wide",
		"flex gap=",
		"flex items=center",
		"flex colgap=3",
		"flex justify=sideways",
		"flex sizing=huge",
		"flex padding=1,2",
		"flex wrap=maybe",
		"flex color=red",
		"grid",
		"grid 3",
		"grid axb",
		"grid 3x",
		"grid 0x2",
		"grid 2x2 wrap=true",
		"grid 2x2 justify=center",
		"grid 2x2 content=start",
		"flex row 3 gap=nan",
		"flex gap=inf",
		"flex gap=+Inf",
		"flex padding=1,NaN,1,1",
		"grid 2x2 padding=nan",
		"grid 2x2 colgap=NaN",
		"grid 2x2 rowgap=-inf",
		"flex 100000",
		"grid 2x2 10001",
		"grid 100000x100000",
		"grid 4294967296x4294967296",
		"grid 99999999999999999999x2",
		"grid 1001x1",
		"grid 101x100",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidCommand, "input %q", in)
	}
}

func TestCommand_Children(t *testing.T) {
	grid, err := Parse("grid 3x3")
	require.NoError(t, err)
	assert.Equal(t, 9, grid.Children(4))

	flex, err := Parse("flex row")
	require.NoError(t, err)
	assert.Equal(t, 4, flex.Children(4))

	counted, err := Parse("grid 3x3 2")
	require.NoError(t, err)
	assert.Equal(t, 2, counted.Children(4))

	largest, err := Parse("grid 100x100")
	require.NoError(t, err)
	assert.Equal(t, MaxChildren, largest.Children(4))

	_, err = Parse("flex 10000")
	assert.NoError(t, err)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		cfg  layout.Config
		want string
	}{
		{nil, "none"},
		{layout.NoLayout{}, "none"},
		{layout.DefaultFlex(), "flex row"},
		{layout.FlexLayout{Direction: layout.Column, Wrap: true, Gap: 2.5, AlignContent: layout.JustifyCenter}, "flex column wrap gap=2.5 content=center"},
		{layout.DefaultGrid(), "grid 2x2"},
		{layout.GridLayout{Columns: 4, Rows: 1, Gap: 8, RowGap: ptr(3.0), ChildSizing: layout.SizingAuto}, "grid 4x1 rowgap=3 sizing=auto"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.cfg))
	}
}

func TestFormat_ParsesBack(t *testing.T) {
	for _, in := range []string{
		"flex column wrap gap=3 justify=space-around align=end content=space-evenly sizing=fill padding=1,2,3,4",
		"grid 5x2 gap=0 colgap=2 rowgap=7 align=center items=stretch padding=6",
	} {
		cmd, err := Parse(in)
		require.NoError(t, err)
		again, err := Parse(Format(cmd.Config))
		require.NoError(t, err)
		assert.Equal(t, cmd.Config, again.Config, in)
	}
}
