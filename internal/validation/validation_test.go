package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("row"), 0o644))

	assert.NoError(t, IsValidInputFile(path))
	assert.Error(t, IsValidInputFile(""))
	assert.Error(t, IsValidInputFile(filepath.Join(dir, "absent.txt")))
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.NoError(t, IsValidOutputFormat("json"))
	assert.NoError(t, IsValidOutputFormat("csv"))
	assert.Error(t, IsValidOutputFormat("xml"))
	assert.Error(t, IsValidOutputFormat(""))
}
