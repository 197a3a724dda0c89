package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agiangrant/boxlayout/canvas"
	"github.com/agiangrant/boxlayout/command"
	"github.com/agiangrant/boxlayout/layout"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type calcOptions struct {
	width, height float64
	border        string
	padding       float64
	count         int
	asJSON        bool
}

// BoxOutput is one box in the calc report.
type BoxOutput struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CalcOutput is the calc report.
type CalcOutput struct {
	Layout           string      `json:"layout"`
	Container        BoxOutput   `json:"container"`
	Children         []BoxOutput `json:"children"`
	Overflow         bool        `json:"overflow"`
	OverflowChildIDs []string    `json:"overflowChildIds,omitempty"`
}

func newCalcCommand(a *app) *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:   "calc <layout command>",
		Short: "Lay out new children in a container and print their geometry",
		Long: `Parses a layout command and lays out fresh children in a container.

Commands:
  none
  flex [row|column|col] [N] [wrap] [key=value ...]
  grid CxR [N] [key=value ...]

Keys: gap, colgap, rowgap, justify, align, content, items, sizing,
padding (N or T,R,B,L), wrap.`,
		Example: `  boxlayout calc "flex row 3 gap=10" --width 324 --height 104
  boxlayout calc "grid 3x2 items=center sizing=auto" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := command.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				opts.width = a.config.Canvas.ArtboardWidth
			}
			if !cmd.Flags().Changed("height") {
				opts.height = a.config.Canvas.ArtboardHeight
			}
			if opts.count <= 0 {
				opts.count = parsed.Children(a.config.Canvas.DefaultChildCount)
			}

			out, err := a.calc(parsed.Config, opts)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeTable(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height (default from config)")
	cmd.Flags().StringVar(&opts.border, "border", "", "container border style (double is 4px per side, anything else 2px)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "container padding")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of children (overrides the command)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

// calc runs the layout through the orchestrator over an in-memory canvas.
// A plain container is generated straight into an artboard; a styled one is
// created first and laid out in place.
func (a *app) calc(cfg layout.Config, opts calcOptions) (CalcOutput, error) {
	if layout.KindOf(cfg) == layout.KindNone {
		return CalcOutput{Layout: command.Format(cfg)}, nil
	}

	store := canvas.NewMemoryStore()
	tracker := canvas.NewOverflowTracker(a.config.Canvas.OverflowClearAfter(), a.logger)
	defer tracker.ClearOverflowBoxIDs()

	artboardID := uuid.NewString()
	orch := canvas.NewOrchestrator(store, canvas.OrchestratorConfig{
		Artboards: canvas.Artboards{artboardID: {ID: artboardID, Width: opts.width, Height: opts.height}},
		Overflow:  tracker,
		Logger:    a.logger,
	})
	defer orch.Watch(store)()

	var containerID string
	if opts.border == "" && opts.padding == 0 {
		ids, err := orch.GenerateLayoutInArtboard(artboardID, cfg, opts.count)
		if err != nil {
			return CalcOutput{}, err
		}
		containerID = ids[0]
	} else {
		containerID = uuid.NewString()
		host := layout.Box{
			ID:          containerID,
			ArtboardID:  artboardID,
			Width:       opts.width,
			Height:      opts.height,
			BorderStyle: opts.border,
			Padding:     opts.padding,
		}
		if err := store.AddBox(host); err != nil {
			return CalcOutput{}, err
		}
		if _, err := orch.GenerateLayoutInBox(containerID, cfg, opts.count); err != nil {
			return CalcOutput{}, err
		}
	}

	res, _ := orch.Recalculate(containerID)
	container, _ := store.Box(containerID)

	out := CalcOutput{
		Layout:           command.Format(cfg),
		Container:        boxOutput(container),
		Overflow:         res.Overflow,
		OverflowChildIDs: tracker.OverflowBoxIDs(),
	}
	for _, child := range layout.ChildrenOf(container, store.Boxes()) {
		out.Children = append(out.Children, boxOutput(child))
	}
	a.logger.Debug("calc done", zap.String("layout", out.Layout), zap.Int("children", len(out.Children)))
	return out, nil
}

func boxOutput(b layout.Box) BoxOutput {
	return BoxOutput{ID: b.ID, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

func writeJSON(w io.Writer, out CalcOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTable(w io.Writer, out CalcOutput) error {
	fmt.Fprintf(w, "%s in %gx%g\n", out.Layout, out.Container.Width, out.Container.Height)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tX\tY\tWIDTH\tHEIGHT\tID")
	for i, c := range out.Children {
		fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%s\n", i, c.X, c.Y, c.Width, c.Height, c.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if out.Overflow {
		fmt.Fprintln(w, "warning: children overflow the container")
	}
	for _, id := range out.OverflowChildIDs {
		fmt.Fprintf(w, "warning: %s has no grid cell\n", id)
	}
	return nil
}
