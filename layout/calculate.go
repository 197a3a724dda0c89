package layout

import "fmt"

// Calculate routes a container to the resolver for its configuration. A
// nil or NoLayout config yields an empty result.
func Calculate(container Box, children []Box, cfg Config) Result {
	switch c := cfg.(type) {
	case nil, NoLayout:
		return Result{}
	case FlexLayout:
		return CalculateFlex(container, children, c)
	case GridLayout:
		return CalculateGrid(container, children, c)
	default:
		panic(fmt.Sprintf("layout: unhandled config %T", cfg))
	}
}
