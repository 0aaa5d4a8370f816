package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pagedtable/internal/table"
)

// LoadRecords reads records from a .json, .yaml, or .yml file.
//
// The file holds either a list of objects or a single-key object wrapping
// that list, such as {"people": [...]}. Non-string values are formatted with
// fmt; null becomes "".
func LoadRecords(path string) ([]table.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", path, err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing records %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing records %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported records file extension %q", ErrInvalidConfig, filepath.Ext(path))
	}

	records, err := toRecords(doc)
	if err != nil {
		return nil, fmt.Errorf("records %s: %w", path, err)
	}
	return records, nil
}

func toRecords(doc any) ([]table.Record, error) {
	switch v := doc.(type) {
	case nil:
		return []table.Record{}, nil
	case []any:
		return listToRecords(v)
	case map[string]any:
		if len(v) != 1 {
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("%w: expected a list or a single-key object, got keys %v", ErrInvalidConfig, keys)
		}
		for _, inner := range v {
			list, ok := inner.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: wrapped value is not a list", ErrInvalidConfig)
			}
			return listToRecords(list)
		}
	}
	return nil, fmt.Errorf("%w: expected a list of objects, got %T", ErrInvalidConfig, doc)
}

func listToRecords(list []any) ([]table.Record, error) {
	records := make([]table.Record, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T, not an object", ErrInvalidConfig, i, item)
		}
		rec := make(table.Record, len(obj))
		for k, val := range obj {
			if val == nil {
				rec[k] = ""
				continue
			}
			rec[k] = fmt.Sprint(val)
		}
		records = append(records, rec)
	}
	return records, nil
}
