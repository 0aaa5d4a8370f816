package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/table"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyVersion   = "version"
	keyPageSize  = "page_size"
	keyCollation = "collation"
	keySort      = "sort"
	keyData      = "data"
	keyColumns   = "columns"
	keyRecords   = "records"
	keyLogging   = "logging"
	keyServer    = "server"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged; unknown keys
// are ignored. A relative data path set by the overlay resolves against the
// overlay's directory.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	// Discover which top-level keys are present in the overlay.
	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
		if key == keyData {
			target.baseDir = filepath.Dir(overlayPath)
		}
	}

	return nil
}

// unmarshalSection decodes node into the field named by key. Each section is
// decoded into a fresh zero value so it replaces the target section entirely.
//
//nolint:cyclop // One branch per config section.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyVersion:
		return node.Decode(&target.Version)
	case keyPageSize:
		var v int
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.PageSize = v
	case keyCollation:
		return node.Decode(&target.Collation)
	case keySort:
		return node.Decode(&target.Sort)
	case keyData:
		return node.Decode(&target.Data)
	case keyColumns:
		var v []table.Column
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Columns = v
	case keyRecords:
		var v []table.Record
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Records = v
	case keyLogging:
		var v logging.Config
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyServer:
		var v ServerConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	}
	return nil
}

// LoadWithOverlay loads path and, when overlayPath is set, shallow-merges it
// on top before environment overrides and validation.
func LoadWithOverlay(path, overlayPath string) (*Config, error) {
	if overlayPath == "" {
		return Load(path)
	}

	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		return nil, err
	}
	return finish(cfg)
}
