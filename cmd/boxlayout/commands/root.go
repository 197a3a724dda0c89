package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agiangrant/boxlayout/internal/config"
	"github.com/agiangrant/boxlayout/internal/observability"
	"github.com/agiangrant/boxlayout/layout"
)

// Version is set at build time with
// -ldflags "-X github.com/agiangrant/boxlayout/cmd/boxlayout/commands.Version=1.2.3"
var Version = "0.1.0"

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	configPath string
	config     config.Config
	logger     *zap.Logger
}

// NewRootCommand builds the boxlayout command tree.
func NewRootCommand() *cobra.Command {
	a := &app{config: config.DefaultConfig(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "boxlayout",
		Short:         "Flex and grid layout for nested boxes",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default is boxlayout.toml in the project root)")
	root.SetVersionTemplate("boxlayout version {{.Version}}\n")

	root.AddCommand(newCalcCommand(a), newInitCommand(a), newVersionCommand())
	return root
}

func (a *app) load() error {
	path := a.configPath
	if path == "" {
		path = config.FileName
		if root, err := config.FindProjectRoot("."); err == nil {
			path = filepath.Join(root, config.FileName)
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger = observability.NewLogger(cfg.Logger)
	layout.SetLogger(a.logger)
	a.logger.Debug("config loaded", zap.String("path", path))
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
