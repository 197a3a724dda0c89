package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFlexReorder(t *testing.T) {
	parent, children := flexRow()

	tests := []struct {
		name     string
		dragged  int
		to       Point
		want     bool
		swapWith string
		order    []string
	}{
		{name: "exactly on neighbour centre", dragged: 0, to: Point{X: 112, Y: 2}, want: false},
		{name: "just past neighbour centre", dragged: 0, to: Point{X: 113, Y: 2}, want: true, swapWith: "c1", order: []string{"c1", "c0", "c2"}},
		{name: "past the last child", dragged: 0, to: Point{X: 300, Y: 2}, want: true, swapWith: "c2", order: []string{"c1", "c2", "c0"}},
		{name: "backward to the front", dragged: 2, to: Point{X: 0, Y: 2}, want: true, swapWith: "c0", order: []string{"c2", "c0", "c1"}},
		{name: "backward exactly on centre", dragged: 2, to: Point{X: 112, Y: 2}, want: false},
		{name: "small nudge", dragged: 1, to: Point{X: 130, Y: 2}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateFlexReorder(children[tt.dragged], tt.to, parent, children)
			assert.Equal(t, tt.want, res.ShouldReorder)
			if tt.want {
				assert.Equal(t, tt.swapWith, res.SwapWithID)
				assert.Equal(t, tt.order, res.NewChildOrder)
			}
		})
	}
}

func TestCalculateFlexReorder_EqualPositionsAreDeterministic(t *testing.T) {
	parent := container(204, 104)
	parent.Layout = FlexLayout{}
	children := boxes(3, 20, 20)

	for i := 0; i < 5; i++ {
		res := CalculateFlexReorder(children[0], Point{X: 1}, parent, children)
		assert.True(t, res.ShouldReorder)
		assert.Equal(t, "c2", res.SwapWithID)
		assert.Equal(t, []string{"c1", "c2", "c0"}, res.NewChildOrder)
	}
}

func TestCalculateFlexReorder_Column(t *testing.T) {
	parent := container(104, 324)
	parent.Layout = FlexLayout{Direction: Column, Gap: 10}
	children := boxes(3, 100, 100)
	for i := range children {
		children[i].Y = 2 + float64(i)*110
	}

	res := CalculateFlexReorder(children[1], Point{X: 2, Y: 230}, parent, children)
	assert.True(t, res.ShouldReorder)
	assert.Equal(t, []string{"c0", "c2", "c1"}, res.NewChildOrder)
}

func TestCalculateFlexReorder_Degenerate(t *testing.T) {
	parent, children := flexRow()
	stranger := Box{ID: "stranger", Width: 10, Height: 10}
	assert.False(t, CalculateFlexReorder(stranger, Point{X: 300}, parent, children).ShouldReorder)

	grid := parent
	grid.Layout = GridLayout{Columns: 3, Rows: 1}
	assert.False(t, CalculateFlexReorder(children[0], Point{X: 300}, grid, children).ShouldReorder)
}

func TestCalculateGridReorder(t *testing.T) {
	parent := container(104, 104)
	parent.Layout = GridLayout{Columns: 2, Rows: 2, Gap: 8}
	children := boxes(4, 46, 46)

	res := CalculateGridReorder(children[0], Point{X: 56, Y: 56}, parent, children)
	assert.True(t, res.ShouldReorder)
	assert.Equal(t, "c3", res.SwapWithID)
	assert.Equal(t, []string{"c3", "c1", "c2", "c0"}, res.NewChildOrder)

	res = CalculateGridReorder(children[0], Point{X: 500, Y: 500}, parent, children)
	assert.Equal(t, "c3", res.SwapWithID, "drop point clamps into the grid")

	res = CalculateGridReorder(children[0], Point{X: 10, Y: 10}, parent, children)
	assert.False(t, res.ShouldReorder)

	res = CalculateGridReorder(children[0], Point{X: 56, Y: 56}, parent, children[:3])
	assert.Equal(t, "c2", res.SwapWithID, "target clamps to the child count")
	assert.Equal(t, []string{"c2", "c1", "c0"}, res.NewChildOrder)
}

func TestIsDraggingOutsideLayout(t *testing.T) {
	parent := container(104, 104)
	parent.Layout = FlexLayout{}
	child := Box{ID: "c", Width: 20, Height: 20}

	tests := []struct {
		to   Point
		want bool
	}{
		{Point{X: 40, Y: 40}, false},
		{Point{X: -20, Y: -20}, false},
		{Point{X: -40, Y: 40}, true},
		{Point{X: 100, Y: 40}, false},
		{Point{X: 115, Y: 40}, true},
		{Point{X: 40, Y: 115}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDraggingOutsideLayout(child, tt.to, parent), "drag to %+v", tt.to)
	}
}
