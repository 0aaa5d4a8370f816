package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagedtable/internal/htmlview"
	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/pagination"
	"github.com/rshade/pagedtable/internal/table"
)

// Output formats accepted by render.
const (
	outputHTML = "html"
	outputJSON = "json"
	outputYAML = "yaml"
	outputText = "text"
)

//nolint:gochecknoglobals // Read-only list of supported formats.
var outputFormats = []string{outputHTML, outputJSON, outputYAML, outputText}

type renderOptions struct {
	output   string
	events   []string
	fragment bool
}

// pageDocument is the structured form of one rendered page.
type pageDocument struct {
	Columns []table.Column  `json:"columns" yaml:"columns"`
	Sort    *sortDocument   `json:"sort,omitempty" yaml:"sort,omitempty"`
	Records []table.Record  `json:"records" yaml:"records"`
	Meta    pagination.Meta `json:"meta" yaml:"meta"`
}

type sortDocument struct {
	Field     string `json:"field" yaml:"field"`
	Direction string `json:"direction" yaml:"direction"`
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one page of the table",
		Long: `Builds the table, applies --events in order, and prints the current page.

Events use the forms prev, next, page:N (zero-based), and sort:FIELD.
A sort event toggles that column's direction, starting ascending.`,
		Example: `  # First page as a complete HTML document
  pagedtable render

  # Name descending, second page, as JSON
  pagedtable render --events sort:name,sort:name,next -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", outputHTML, "output format: html, json, yaml, or text")
	cmd.Flags().StringSliceVar(&opts.events, "events", nil, "comma-separated events to apply before printing")
	cmd.Flags().BoolVar(&opts.fragment, "fragment", false, "html only: print the table without the page around it")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, opts renderOptions) error {
	if !slices.Contains(outputFormats, opts.output) {
		return fmt.Errorf("unsupported output format %q (want one of %v)", opts.output, outputFormats)
	}

	events := make([]table.Event, 0, len(opts.events))
	for _, raw := range opts.events {
		ev, err := table.ParseEvent(raw)
		if err != nil {
			return err
		}
		events = append(events, ev)
	}

	log := logging.FromContext(cmd.Context())
	factory, err := newWidgetFactory(a.cfg, log)
	if err != nil {
		return err
	}

	surface := htmlview.NewSurface()
	widget, err := factory(surface)
	if err != nil {
		return err
	}
	if err := widget.Render(); err != nil {
		return err
	}
	for _, ev := range events {
		if err := surface.Dispatch(ev); err != nil {
			return fmt.Errorf("applying %s: %w", ev, err)
		}
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newPageDocument(widget.Table()))
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2) //nolint:mnd // Conventional YAML indent.
		if err := enc.Encode(newPageDocument(widget.Table())); err != nil {
			return err
		}
		return enc.Close()
	case outputText:
		return renderText(out, widget.Table())
	default:
		node := surface.Node()
		if !opts.fragment {
			node = htmlview.Document(a.cfg.Server.Title, node)
		}
		if err := node.Render(out); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	}
}

func newPageDocument(t *table.Table) pageDocument {
	doc := pageDocument{
		Columns: t.Columns(),
		Records: t.CurrentPage(),
		Meta:    t.Meta(),
	}
	if s := t.Sort(); s.Active {
		doc.Sort = &sortDocument{Field: s.Field, Direction: s.Direction.String()}
	}
	return doc
}

// renderText prints the current page as a bordered text table followed by a
// status line.
func renderText(w io.Writer, t *table.Table) error {
	view := t.View()

	headers := make([]string, len(view.Header))
	for i, cell := range view.Header {
		headers[i] = cell.Label
		if cell.Indicator != "" {
			headers[i] += " " + cell.Indicator
		}
	}
	rows := make([][]string, len(view.Rows))
	for i, row := range view.Rows {
		line := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			line[j] = cell.Text
		}
		rows[i] = line
	}

	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	meta := view.Meta
	status := "no records"
	if meta.TotalItems > 0 {
		status = fmt.Sprintf("page %d of %d, records %d-%d of %d",
			meta.PageIndex+1, meta.TotalPages, meta.FirstItem, meta.LastItem, meta.TotalItems)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", tbl.Render(), status)
	return err
}
