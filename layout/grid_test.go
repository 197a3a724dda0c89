package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGrid_TwoByTwo(t *testing.T) {
	res := CalculateGrid(container(104, 104), boxes(4, 10, 10), GridLayout{Columns: 2, Rows: 2, Gap: 8})

	assert.False(t, res.Overflow)
	want := []ChildPosition{
		{ID: "c0", X: 2, Y: 2, Width: 46, Height: 46},
		{ID: "c1", X: 56, Y: 2, Width: 46, Height: 46},
		{ID: "c2", X: 2, Y: 56, Width: 46, Height: 46},
		{ID: "c3", X: 56, Y: 56, Width: 46, Height: 46},
	}
	if diff := cmp.Diff(want, res.Positions, cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateGrid_ExcessChildren(t *testing.T) {
	res := CalculateGrid(container(304, 204), boxes(7, 10, 10), GridLayout{Columns: 3, Rows: 2})

	require.Len(t, res.Positions, 6)
	assert.True(t, res.Overflow)
	assert.Equal(t, []string{"c6"}, res.OverflowChildIDs)

	for i, p := range res.Positions {
		row, col := i/3, i%3
		assert.Equal(t, boxes(7, 0, 0)[i].ID, p.ID)
		assert.InDelta(t, 2+float64(col)*100, p.X, eps)
		assert.InDelta(t, 2+float64(row)*100, p.Y, eps)
	}
}

func TestCalculateGrid_Alignment(t *testing.T) {
	tests := []struct {
		name  string
		cfg   GridLayout
		child Size
		want  ChildPosition
	}{
		{
			name:  "auto sizing defaults to start with minimum size",
			cfg:   GridLayout{Columns: 2, Rows: 2, Gap: 8, ChildSizing: SizingAuto},
			child: Size{Width: 40, Height: 40},
			want:  ChildPosition{ID: "c0", X: 2, Y: 2, Width: 20, Height: 20},
		},
		{
			name:  "auto sizing centered",
			cfg:   GridLayout{Columns: 2, Rows: 2, Gap: 8, ChildSizing: SizingAuto, AlignItems: AlignCenter, JustifyItems: AlignCenter},
			child: Size{Width: 40, Height: 40},
			want:  ChildPosition{ID: "c0", X: 15, Y: 15, Width: 20, Height: 20},
		},
		{
			name:  "fill sizing with end justification keeps stored width",
			cfg:   GridLayout{Columns: 2, Rows: 2, Gap: 8, JustifyItems: AlignEnd},
			child: Size{Width: 30, Height: 30},
			want:  ChildPosition{ID: "c0", X: 18, Y: 2, Width: 30, Height: 46},
		},
		{
			name:  "stored size is clamped to the cell",
			cfg:   GridLayout{Columns: 2, Rows: 2, Gap: 8, AlignItems: AlignStart, JustifyItems: AlignStart},
			child: Size{Width: 300, Height: 300},
			want:  ChildPosition{ID: "c0", X: 2, Y: 2, Width: 46, Height: 46},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateGrid(container(104, 104), boxes(1, tt.child.Width, tt.child.Height), tt.cfg)
			require.Len(t, res.Positions, 1)
			if diff := cmp.Diff(tt.want, res.Positions[0], cmpopts.EquateApprox(0, eps)); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateGrid_GapOverrides(t *testing.T) {
	columnGap, rowGap := 20.0, 0.0
	cfg := GridLayout{Columns: 2, Rows: 2, Gap: 8, ColumnGap: &columnGap, RowGap: &rowGap}
	res := CalculateGrid(container(104, 104), boxes(4, 10, 10), cfg)

	require.Len(t, res.Positions, 4)
	assert.InDelta(t, 40, res.Positions[0].Width, eps)
	assert.InDelta(t, 62, res.Positions[1].X, eps)
	assert.InDelta(t, 50, res.Positions[0].Height, eps)
	assert.InDelta(t, 52, res.Positions[2].Y, eps)
}

func TestCalculateGrid_CellsBelowMinimum(t *testing.T) {
	res := CalculateGrid(container(34, 104), boxes(2, 10, 10), GridLayout{Columns: 2, Rows: 1})

	assert.True(t, res.Overflow)
	assert.Empty(t, res.OverflowChildIDs)
	for _, p := range res.Positions {
		assert.Equal(t, MinWidth, p.Width)
	}
}

func TestCalculateGrid_InvalidDimensionsAreClamped(t *testing.T) {
	res := CalculateGrid(container(104, 104), boxes(2, 10, 10), GridLayout{Columns: 0, Rows: -1})
	require.Len(t, res.Positions, 1)
	assert.Equal(t, []string{"c1"}, res.OverflowChildIDs)
	assert.InDelta(t, 100, res.Positions[0].Width, eps)
}

func TestCalculate_Dispatch(t *testing.T) {
	c := container(204, 104)
	children := boxes(3, 30, 30)
	flex := FlexLayout{Gap: 4, JustifyContent: JustifyCenter}
	grid := GridLayout{Columns: 3, Rows: 1}

	assert.Empty(t, Calculate(c, children, nil).Positions)
	assert.Empty(t, Calculate(c, children, NoLayout{}).Positions)
	assert.Equal(t, CalculateFlex(c, children, flex), Calculate(c, children, flex))
	assert.Equal(t, CalculateGrid(c, children, grid), Calculate(c, children, grid))
}

func TestCalculate_Idempotent(t *testing.T) {
	c := container(404, 304)
	children := boxes(9, 35, 25)
	configs := []Config{
		FlexLayout{Gap: 3, JustifyContent: JustifyEvenly, AlignItems: AlignCenter},
		FlexLayout{Direction: Column, Wrap: true, Gap: 6, AlignContent: JustifyAround},
		GridLayout{Columns: 4, Rows: 2, Gap: 5},
	}
	for _, cfg := range configs {
		first := Calculate(c, children, cfg)
		second := Calculate(c, children, cfg)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%T not idempotent:\n%s", cfg, diff)
		}
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate(FlexLayout{Gap: 4}))
	assert.ErrorIs(t, Validate(FlexLayout{Gap: -1}), ErrNegativeGap)
	assert.ErrorIs(t, Validate(GridLayout{Columns: 0, Rows: 2}), ErrInvalidGrid)
	neg := -2.0
	assert.ErrorIs(t, Validate(GridLayout{Columns: 1, Rows: 1, RowGap: &neg}), ErrNegativeGap)
	assert.NoError(t, Validate(GridLayout{Columns: 3, Rows: 3, Gap: 2}))
}

func TestValidate_NonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	pad := Edges{Top: 1, Right: inf, Bottom: 1, Left: 1}

	assert.ErrorIs(t, Validate(FlexLayout{Gap: nan}), ErrNonFinite)
	assert.ErrorIs(t, Validate(FlexLayout{LayoutPadding: &pad}), ErrNonFinite)
	assert.ErrorIs(t, Validate(GridLayout{Columns: 2, Rows: 2, Gap: inf}), ErrNonFinite)
	assert.ErrorIs(t, Validate(GridLayout{Columns: 2, Rows: 2, ColumnGap: &nan}), ErrNonFinite)
	assert.ErrorIs(t, Validate(GridLayout{Columns: 2, Rows: 2, LayoutPadding: &pad}), ErrNonFinite)
}

func TestValidate_GridBounds(t *testing.T) {
	assert.NoError(t, Validate(GridLayout{Columns: MaxGridTracks, Rows: MaxGridTracks}))
	assert.ErrorIs(t, Validate(GridLayout{Columns: MaxGridTracks + 1, Rows: 1}), ErrInvalidGrid)
	assert.ErrorIs(t, Validate(GridLayout{Columns: 100000, Rows: 100000}), ErrInvalidGrid)
	assert.ErrorIs(t, Validate(GridLayout{Columns: 1 << 32, Rows: 1 << 32}), ErrInvalidGrid)
}

func TestGridCells_Clamped(t *testing.T) {
	assert.Equal(t, 1, GridLayout{}.Cells())
	assert.Equal(t, MaxGridTracks*MaxGridTracks, GridLayout{Columns: 1 << 32, Rows: 1 << 32}.Cells())
}
