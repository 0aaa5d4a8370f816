package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pagedtable/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath  string
	overlayPath string
	dataPath    string
	sort        string
	collation   string
	pageSize    int
	debug       bool
}

// app carries state from the root PersistentPreRunE to subcommands.
type app struct {
	flags rootFlags
	cfg   *config.Config

	// terminal reports whether stdin and stdout are both terminals.
	terminal func() bool
}

// NewRootCmd creates the root Cobra command for the pagedtable CLI.
// It loads configuration and logging before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	return newRootCmd(ver, &app{
		terminal: func() bool { return isTerminal(os.Stdin) && isTerminal(os.Stdout) },
	})
}

func newRootCmd(ver string, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pagedtable",
		Short:         "Paged, sortable tables for the browser and the terminal",
		Long:          "pagedtable: partition records into pages and browse them with sortable columns",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cmd, cfg)
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&a.flags.configPath, "config", "c", "", "config file (defaults to the built-in sample table)")
	f.StringVar(&a.flags.overlayPath, "overlay", "", "config file merged over --config, section by section")
	f.StringVar(&a.flags.dataPath, "data", "", "records file (.yaml, .yml, or .json), overrides the config")
	f.IntVar(&a.flags.pageSize, "page-size", config.Default().PageSize, "records per page")
	f.StringVar(&a.flags.sort, "sort", "", "initial sort as field[:asc|desc]")
	f.StringVar(&a.flags.collation, "collation", "", "sort collation: binary or a BCP 47 language tag")
	f.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newRenderCmd(a), newBrowseCmd(a), newServeCmd(a), newVersionCmd(ver))
	return cmd
}

// loadConfig loads --config and --overlay, then applies flag overrides.
// Only flags the user set override the file.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithOverlay(a.flags.configPath, a.flags.overlayPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		path, err := filepath.Abs(a.flags.dataPath)
		if err != nil {
			return nil, fmt.Errorf("resolving --data: %w", err)
		}
		cfg.Data = path
	}
	if flags.Changed("page-size") {
		cfg.PageSize = a.flags.pageSize
	}
	if flags.Changed("sort") {
		cfg.Sort = a.flags.sort
	}
	if flags.Changed("collation") {
		cfg.Collation = a.flags.collation
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const rootCmdExample = `  # Print the first page of the built-in sample as HTML
  pagedtable render

  # Print page 2 of a records file, sorted by name, as a text table
  pagedtable render --data people.json --sort name --events page:1 -o text

  # Browse a table in the terminal
  pagedtable browse --config table.yaml

  # Serve a table over HTTP
  pagedtable serve --config table.yaml --addr :9000`
