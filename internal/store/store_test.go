package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlift/internal/logging"
)

func writeCategories(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCategoryNamesStructuredDocument(t *testing.T) {
	path := writeCategories(t, "categories:\n  - name: Groceries\n  - name: Dining\n  - name: \"  \"\n")
	s := NewCategoryStore(path, &logging.MockLogger{})

	names, err := s.LoadCategoryNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Dining"}, names)
}

func TestLoadCategoryNamesBareList(t *testing.T) {
	path := writeCategories(t, "- Transport\n- Utilities\n")
	s := NewCategoryStore(path, &logging.MockLogger{})

	names, err := s.LoadCategoryNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Transport", "Utilities"}, names)
}

func TestLoadCategoryNamesKeyedMap(t *testing.T) {
	path := writeCategories(t, "Groceries:\n  keywords: [migros, coop]\nDining: restaurants\n")
	s := NewCategoryStore(path, &logging.MockLogger{})

	names, err := s.LoadCategoryNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Dining", "Groceries"}, names)
}

func TestLoadCategoryNamesMissingFile(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "absent.yaml"), &logging.MockLogger{})

	names, err := s.LoadCategoryNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadCategoryNamesInvalidYAML(t *testing.T) {
	path := writeCategories(t, "categories: [unterminated\n")
	s := NewCategoryStore(path, &logging.MockLogger{})

	_, err := s.LoadCategoryNames()
	assert.Error(t, err)
}
