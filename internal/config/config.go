// Package config loads the paged table configuration from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/pagination"
	"github.com/rshade/pagedtable/internal/table"
)

// Schema versions this build can read.
const (
	CurrentVersion    = "1.0.0"
	versionConstraint = "^1.0"
)

// CollationBinary compares field values byte by byte.
const CollationBinary = "binary"

// Environment variables that override file values.
const (
	EnvPageSize  = "PAGEDTABLE_PAGE_SIZE"
	EnvLogLevel  = "PAGEDTABLE_LOG_LEVEL"
	EnvLogFormat = "PAGEDTABLE_LOG_FORMAT"
	EnvAddr      = "PAGEDTABLE_ADDR"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ServerConfig configures the HTTP host page.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Title string `yaml:"title"`
}

// Config is the complete table configuration.
type Config struct {
	Version   string         `yaml:"version"`
	PageSize  int            `yaml:"page_size"`
	Collation string         `yaml:"collation"`
	Sort      string         `yaml:"sort"`
	Data      string         `yaml:"data"`
	Columns   []table.Column `yaml:"columns"`
	Records   []table.Record `yaml:"records"`
	Logging   logging.Config `yaml:"logging"`
	Server    ServerConfig   `yaml:"server"`

	// baseDir resolves a relative Data path; it is the config file's directory.
	baseDir string
}

// Default returns the built-in configuration: the sample people table with
// two rows per page.
func Default() *Config {
	return &Config{
		Version:   CurrentVersion,
		PageSize:  2, //nolint:mnd // Rows per page of the sample table.
		Collation: CollationBinary,
		Columns:   SampleColumns(),
		Records:   SampleRecords(),
		Logging: logging.Config{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Server: ServerConfig{
			Addr:  ":8080",
			Title: "People",
		},
	}
}

// Load reads path over Default, applies environment overrides, and validates.
// An empty path returns the validated defaults.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// load reads path over Default without overrides or validation.
func load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	// The sample records only apply when no file is given.
	cfg.Records = nil
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// finish applies environment overrides and validates.
func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvPageSize, v)
		}
		c.PageSize = n
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks the schema version, page size, sort, columns, and collation.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	params := pagination.Params{PageSize: c.PageSize, Sort: c.Sort}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := table.ValidateColumns(c.Columns); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Sort != "" {
		field, _, _ := pagination.ParseSort(c.Sort)
		if !c.isSortable(field) {
			return fmt.Errorf("%w: sort field %q is not a sortable column", ErrInvalidConfig, field)
		}
	}

	if _, err := c.Less(); err != nil {
		return err
	}

	return nil
}

func checkVersion(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidConfig)
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: version %q: %w", ErrInvalidConfig, raw, err)
	}
	constraint, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: version %s is not supported (want %s)", ErrInvalidConfig, v, versionConstraint)
	}
	return nil
}

func (c *Config) isSortable(field string) bool {
	for _, col := range c.Columns {
		if col.FieldKey == field {
			return col.IsSortable
		}
	}
	return false
}

// Less resolves the collation into a key comparison.
// "binary" (or empty) compares bytes; anything else is parsed as a BCP 47 tag.
func (c *Config) Less() (pagination.LessFunc, error) {
	name := strings.TrimSpace(c.Collation)
	if name == "" || strings.EqualFold(name, CollationBinary) {
		return pagination.BinaryLess, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: collation %q: %w", ErrInvalidConfig, name, err)
	}
	return pagination.CollatorLess(tag), nil
}

// ResolveRecords returns the records from the data file, or the inline records.
func (c *Config) ResolveRecords() ([]table.Record, error) {
	if c.Data == "" {
		return c.Records, nil
	}
	path := c.Data
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}
	return LoadRecords(path)
}

// TableOptions returns the table options implied by the configuration.
func (c *Config) TableOptions(logger zerolog.Logger) ([]table.Option, error) {
	less, err := c.Less()
	if err != nil {
		return nil, err
	}

	opts := []table.Option{
		table.WithLogger(logger),
		table.WithLess(less),
	}
	if c.Sort != "" {
		field, dir, err := pagination.ParseSort(c.Sort)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		opts = append(opts, table.WithInitialSort(field, dir))
	}
	return opts, nil
}
