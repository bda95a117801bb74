package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/contextweave/contextweave/config"
	"github.com/contextweave/contextweave/utils"
)

// newValidateCmd creates the 'validate' subcommand.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a weave config file against the schema",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := os.Stat(args[0]); err != nil {
				utils.Error("config read error: %v", err)
				exit(1)
				return
			}
			if _, err := config.LoadConfig(args[0]); err != nil {
				utils.Error("config validation error: %v", err)
				exit(2)
				return
			}
			utils.User("Validation OK: config is valid!")
		},
	}
}
