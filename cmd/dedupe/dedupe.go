// Package dedupe handles the duplicate detection command.
package dedupe

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ledgerlift/cmd/root"
	"ledgerlift/internal/common"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/validation"
)

// Cmd represents the dedupe command.
var Cmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Flag likely duplicate transactions in a stored record set",
	Long: `Read an existing transaction set from CSV and ask the configured model
which entries look like redundant copies of another entry. The result only
ever contains identifiers present in the input file.`,
	RunE: dedupeFunc,
}

func dedupeFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		return err
	}

	c := root.GetContainer()
	log := c.GetLogger()
	log.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "dedupe"},
		logging.Field{Key: logging.FieldInputFile, Value: root.SharedFlags.Input},
	).Info("command called")

	existing, err := common.ReadExistingTransactions(root.SharedFlags.Input)
	if err != nil {
		return err
	}

	result, err := c.GetDetector().Detect(cmd.Context(), existing)
	if err != nil {
		return err
	}

	if root.SharedFlags.Output != "" {
		return common.WriteJSONFile(result, root.SharedFlags.Output)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
