// Package root contains the root command for the application.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerlift/internal/common"
	"ledgerlift/internal/config"
	"ledgerlift/internal/container"
	"ledgerlift/internal/logging"
)

// CommonFlags represents the flags shared by multiple commands.
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the root command's PersistentPreRunE has run.
	Log logging.Logger = logging.GetLogger()

	// SharedFlags holds common flag values accessible to all commands.
	SharedFlags = CommonFlags{}

	appContainer *container.Container

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ledgerlift",
		Short: "Extract and deduplicate transactions from bank statements.",
		Long: `ledgerlift ingests statement data (spreadsheet row dumps or PDF-extracted
text) and produces structured, validated transaction records using a
schema-constrained language model call. It can also flag likely duplicate
transactions in an existing record set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			appContainer, err = container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("initializing application: %w", err)
			}

			Log = appContainer.GetLogger()
			common.SetLogger(Log)
			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			return nil
		},
		SilenceUsage: true,
	}
)

// GetContainer returns the application container built during command setup.
func GetContainer() *container.Container {
	return appContainer
}

// Init initializes the root command and all shared flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "json", "Output format: json or csv")
}
