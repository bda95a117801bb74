package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/contextweave/contextweave/config"
	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/telemetry"
	"github.com/contextweave/contextweave/utils"
)

var (
	exit       = os.Exit
	configPath string
	debug      bool
	cfg        *config.Config
)

// NewRootCmd creates the root 'weave' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weave",
		Short: "Assemble composable documents from a graph of referencing source files",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.ConfigFileName, "Path to weave config JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file, if present
		_ = godotenv.Load()

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			utils.Error("config load failed: %v", err)
			exit(1)
			return
		}
		cfg = loaded
		if debug || cfg.Log.Level == "debug" {
			utils.SetMode("debug")
		}
		telemetry.Init(cfg)
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newRenderCmd(),
		newGraphCmd(),
		newValidateCmd(),
	)
	return rootCmd
}
