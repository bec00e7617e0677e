// Package ingest handles the statement ingestion command.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledgerlift/cmd/root"
	"ledgerlift/internal/common"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
	"ledgerlift/internal/validation"
)

var statementType string

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract transactions from a statement file",
	Long: `Extract structured transactions from a statement file. Spreadsheet dumps
are read one row per line and each extracted transaction carries the 1-based
line index of its source row; PDF-extracted text is passed through as a
single block.`,
	RunE: ingestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&statementType, "type", "t", string(models.ContentTypeSpreadsheet),
		"Statement content type: spreadsheet or pdf")
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		return err
	}
	if err := validation.IsValidOutputFormat(root.SharedFlags.Format); err != nil {
		return err
	}

	contentType := models.ContentType(statementType)
	if !contentType.Valid() {
		return fmt.Errorf("unsupported statement type: %q", statementType)
	}

	c := root.GetContainer()
	log := c.GetLogger()
	log.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "ingest"},
		logging.Field{Key: logging.FieldInputFile, Value: root.SharedFlags.Input},
		logging.Field{Key: logging.FieldContentType, Value: statementType},
	).Info("command called")

	input := models.RawStatementInput{ContentType: contentType}
	switch contentType {
	case models.ContentTypeSpreadsheet:
		rows, err := common.ReadStatementRows(root.SharedFlags.Input)
		if err != nil {
			return err
		}
		input.Rows = rows
	case models.ContentTypePDF:
		text, err := common.ReadStatementText(root.SharedFlags.Input)
		if err != nil {
			return err
		}
		input.Text = text
	}

	categories, err := c.GetStore().LoadCategoryNames()
	if err != nil {
		return err
	}

	result, err := c.GetPipeline().Ingest(cmd.Context(), input, categories)
	if err != nil {
		return err
	}

	return writeResult(result)
}

func writeResult(result models.ExtractionResult) error {
	if root.SharedFlags.Output == "" {
		if root.SharedFlags.Format == "csv" {
			return common.WriteTransactionsCSV(os.Stdout, result.Expenses)
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if root.SharedFlags.Format == "csv" {
		return common.WriteTransactionsToCSV(result.Expenses, root.SharedFlags.Output)
	}
	if err := common.WriteJSONFile(result, root.SharedFlags.Output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d transactions to %s\n", len(result.Expenses), root.SharedFlags.Output)
	return nil
}
