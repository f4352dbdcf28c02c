package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFileFallsBackToDefaults(t *testing.T) {
	conf, err := Read(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestReadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"http_address = \":9090\"\ncontest_table = \"contests_dev\"\n",
	), 0o644))

	t.Setenv("CONTEST_TABLE", "contests_staging")
	t.Setenv("EXPORT_BUCKET", "exports")

	conf, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", conf.HttpAddress)
	// env wins over the file
	assert.Equal(t, "contests_staging", conf.ContestTable)
	assert.Equal(t, "exports", conf.ExportBucket)
	// untouched keys keep their defaults
	assert.Equal(t, "contest_statuses", conf.StatusTable)
}

func TestReadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("http_address = [broken"), 0o644))

	_, err := Read(path)
	assert.Error(t, err)
}
