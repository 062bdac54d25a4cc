package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"socialhub/internal/config"
	"socialhub/internal/logger"
)

var (
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "socialhub-admin",
	Short: "Operator tooling for a SocialHub deployment",
	Long: `socialhub-admin runs maintenance tasks against the configured database:
schema migrations and moderator account management.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		return logger.Initialize(logLevel, cfg.Logging.OutputPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(moderatorCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
