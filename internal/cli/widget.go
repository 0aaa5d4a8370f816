package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/server"
	"github.com/rshade/pagedtable/internal/table"
)

// newWidgetFactory resolves records once and returns a factory building a
// fresh widget over them for each surface.
func newWidgetFactory(cfg *config.Config, log zerolog.Logger) (server.WidgetFactory, error) {
	records, err := cfg.ResolveRecords()
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	opts, err := cfg.TableOptions(log)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("records", len(records)).Int("page_size", cfg.PageSize).Msg("table data loaded")
	return func(surface table.Surface) (*table.Widget, error) {
		return table.NewWidget(records, cfg.Columns, cfg.PageSize, surface, opts...)
	}, nil
}
