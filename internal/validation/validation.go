// Package validation provides input checks for the CLI commands.
package validation

import (
	"fmt"

	"ledgerlift/internal/fileutils"
)

// IsValidInputFile checks that the given path names an existing regular file.
func IsValidInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file is required")
	}
	if !fileutils.FileExists(path) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "json", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'csv'", format)
	}
}
