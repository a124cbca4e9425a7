package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs serve when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "eventradar",
	Short: "EventRadar backend functions",
	Long: `EventRadar backend functions: the callable HTTP operations for deleting
events and listing participants, and the announcement notifier that reacts to
newly created messages.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}
