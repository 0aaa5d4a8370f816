package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/tui"
)

// ErrNotTerminal is returned by browse when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use render instead")

func newBrowseCmd(a *app) *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the table interactively in the terminal",
		Long: `Opens the table in the terminal.

Keys: ←/h and →/l change page, 0-9 jump to a page, g prompts for a page,
tab and shift+tab move between sortable columns, s or enter sorts the
focused column, ? shows all keys, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.terminal() {
				return ErrNotTerminal
			}

			log := logging.FromContext(cmd.Context())
			factory, err := newWidgetFactory(a.cfg, log)
			if err != nil {
				return err
			}

			model := tui.NewModel(tui.DefaultKeyMap(), tui.WithTitle(a.cfg.Server.Title))
			widget, err := factory(model)
			if err != nil {
				return err
			}
			if err := widget.Render(); err != nil {
				return err
			}

			opts := []tea.ProgramOption{
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			}
			if !inline {
				opts = append(opts, tea.WithAltScreen())
			}
			return tui.Run(cmd.Context(), model, opts...)
		},
	}

	cmd.Flags().BoolVar(&inline, "inline", false, "draw below the prompt instead of using the alternate screen")
	return cmd
}
