package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/table"
)

// writeFile is a test helper that writes content to name in a temp dir
// and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := config.Default()
	overlay := writeFile(t, "overlay.yaml", `
page_size: 4
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 4, target.PageSize)
	// Untouched sections keep their values.
	assert.Equal(t, config.SampleColumns(), target.Columns)
	assert.Equal(t, ":8080", target.Server.Addr)
}

func TestShallowMergeYAML_SectionReplacedEntirely(t *testing.T) {
	target := config.Default()
	overlay := writeFile(t, "overlay.yaml", `
server:
  title: Staff
columns:
  - {name: Name, key: name, sortable: true}
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "Staff", target.Server.Title)
	assert.Empty(t, target.Server.Addr, "server section is replaced, not merged")
	assert.Equal(t, []table.Column{{DisplayName: "Name", FieldKey: "name", IsSortable: true}}, target.Columns)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.Default()
	overlay := writeFile(t, "overlay.yaml", `
theme: dark
sort: name:desc
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "name:desc", target.Sort)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.Default()
	overlay := writeFile(t, "overlay.yaml", "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, config.Default().PageSize, target.PageSize)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x.yaml"))

	err := config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading overlay file")

	bad := writeFile(t, "overlay.yaml", "page_size: [1, 2]\n")
	err = config.ShallowMergeYAML(config.Default(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"page_size"`)
}

func TestLoadWithOverlay(t *testing.T) {
	base := writeFile(t, "table.yaml", `
version: "1.0.0"
page_size: 2
columns:
  - {name: Name, key: name, sortable: true}
records:
  - {name: a}
`)
	overlay := writeFile(t, "local.yaml", "page_size: 5\n")

	cfg, err := config.LoadWithOverlay(base, overlay)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PageSize)

	cfg, err = config.LoadWithOverlay(base, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.PageSize)

	badOverlay := writeFile(t, "local.yaml", "page_size: 0\n")
	_, err = config.LoadWithOverlay(base, badOverlay)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadWithOverlay_DataRelativeToOverlay(t *testing.T) {
	base := writeFile(t, "table.yaml", `
version: "1.0.0"
page_size: 2
columns:
  - {name: Name, key: name}
records:
  - {name: inline}
`)
	overlay := writeFile(t, "local.yaml", "data: people.json\n")
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(overlay), "people.json"),
		[]byte(`[{"name": "from overlay dir"}]`), 0600))

	cfg, err := config.LoadWithOverlay(base, overlay)
	require.NoError(t, err)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	assert.Equal(t, []table.Record{{"name": "from overlay dir"}}, records)
}
