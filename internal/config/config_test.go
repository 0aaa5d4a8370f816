package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/table"
)

func TestDefault_IsValid(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, 2, cfg.PageSize)
	assert.Len(t, cfg.Columns, 5)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "table.yaml", `
version: "1.2.0"
page_size: 3
collation: en
sort: name:desc
columns:
  - {name: Name, key: name, sortable: true}
  - {name: Avatar, key: avatar, image: true}
records:
  - {name: Bob, avatar: b.png}
  - {name: amy, avatar: a.png}
logging:
  level: debug
  format: json
server:
  addr: 127.0.0.1:9000
  title: Staff
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.PageSize)
	assert.Equal(t, "en", cfg.Collation)
	assert.Equal(t, []table.Column{
		{DisplayName: "Name", FieldKey: "name", IsSortable: true},
		{DisplayName: "Avatar", FieldKey: "avatar", IsImage: true},
	}, cfg.Columns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "Staff", cfg.Server.Title)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	assert.Equal(t, []table.Record{{"name": "Bob", "avatar": "b.png"}, {"name": "amy", "avatar": "a.png"}}, records)

	less, err := cfg.Less()
	require.NoError(t, err)
	assert.True(t, less("amy", "Bob"), "collated comparison ignores case")
}

func TestLoad_FileWithoutRecordsDropsSample(t *testing.T) {
	path := writeFile(t, "table.yaml", `
version: "1.0.0"
page_size: 2
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad_DataFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeAt(filepath.Join(dir, "people.json"), `{"people": [{"name": "John", "id": 12345}]}`))
	require.NoError(t, writeAt(filepath.Join(dir, "table.yaml"), `
version: "1.0.0"
page_size: 2
data: people.json
columns:
  - {name: Name, key: name}
  - {name: ID, key: id}
`))

	cfg, err := config.Load(filepath.Join(dir, "table.yaml"))
	require.NoError(t, err)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	assert.Equal(t, []table.Record{{"name": "John", "id": "12345"}}, records)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "missing version", content: "version: \"\"\n", errMsg: "version is required"},
		{name: "bad version", content: "version: one\n", errMsg: "version \"one\""},
		{name: "unsupported major", content: "version: 2.0.0\n", errMsg: "not supported"},
		{name: "zero page size", content: "version: 1.0.0\npage_size: 0\n", errMsg: "page-size must be between"},
		{name: "no columns", content: "version: 1.0.0\ncolumns: []\n", errMsg: "at least one column"},
		{name: "sort on unknown column", content: "version: 1.0.0\nsort: nope\n", errMsg: "not a sortable column"},
		{name: "sort on non-sortable column", content: "version: 1.0.0\nsort: description\n", errMsg: "not a sortable column"},
		{name: "bad collation", content: "version: 1.0.0\ncollation: \"!!\"\n", errMsg: "collation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "table.yaml", tt.content)
			_, err := config.Load(path)
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "table.yaml", "page_size: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvPageSize:  "7",
		config.EnvLogLevel:  "warn",
		config.EnvLogFormat: "json",
		config.EnvAddr:      ":9999",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":9999", cfg.Server.Addr)

	env[config.EnvPageSize] = "seven"
	err := config.Default().ApplyEnv(lookup)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvPageSize, "4")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.PageSize)
}

func TestTableOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Sort = "username:desc"

	opts, err := cfg.TableOptions(nopLogger())
	require.NoError(t, err)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	tbl, err := table.New(records, cfg.Columns, cfg.PageSize, opts...)
	require.NoError(t, err)

	first := tbl.CurrentPage()[0]
	assert.Equal(t, "tom", first["username"])
}

func TestLoad_BundledSample(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "configs", "people.yaml"))
	require.NoError(t, err)

	records, err := cfg.ResolveRecords()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, config.SampleRecords(), records)
}
