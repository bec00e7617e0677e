// Package store loads the caller's category taxonomy from YAML. Category
// names are offered to the extraction prompt so the model categorizes within
// a known vocabulary instead of inventing its own labels.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ledgerlift/internal/logging"
)

// CategoryStore resolves and loads the categories file.
type CategoryStore struct {
	CategoriesFile string
	log            logging.Logger
}

// NewCategoryStore creates a store for the given categories file. An empty
// filename falls back to "categories.yaml" in the standard locations.
func NewCategoryStore(categoriesFile string, log logging.Logger) *CategoryStore {
	if log == nil {
		log = logging.GetLogger()
	}
	return &CategoryStore{CategoriesFile: categoriesFile, log: log}
}

// categoriesDoc is the preferred file shape:
//
//	categories:
//	  - name: Groceries
//	  - name: Dining
type categoriesDoc struct {
	Categories []categoryEntry `yaml:"categories"`
}

type categoryEntry struct {
	Name string `yaml:"name"`
}

// LoadCategoryNames returns the category names from the configured file.
// A missing file yields an empty list, not an error; ingestion works fine
// without category hints.
func (s *CategoryStore) LoadCategoryNames() ([]string, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.findConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.WithField(logging.FieldInputFile, filename).Debug("categories file not found")
			return []string{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	names, err := parseCategoryNames(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}

	s.log.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(names)},
	).Debug("loaded categories")
	return names, nil
}

// parseCategoryNames accepts the structured document form, a bare list of
// names, or a map keyed by category name.
func parseCategoryNames(data []byte) ([]string, error) {
	var doc categoriesDoc
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Categories) > 0 {
		names := make([]string, 0, len(doc.Categories))
		for _, c := range doc.Categories {
			if name := strings.TrimSpace(c.Name); name != "" {
				names = append(names, name)
			}
		}
		return names, nil
	}

	var bare []string
	if err := yaml.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		names := make([]string, 0, len(bare))
		for _, name := range bare {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		return names, nil
	}

	var keyed map[string]interface{}
	if err := yaml.Unmarshal(data, &keyed); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keyed))
	for name := range keyed {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// findConfigFile looks for the file in standard locations.
func (s *CategoryStore) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "ledgerlift", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}
