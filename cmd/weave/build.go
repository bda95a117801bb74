package main

import (
	"github.com/spf13/cobra"

	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/graph"
	"github.com/contextweave/contextweave/resolver"
	"github.com/contextweave/contextweave/utils"
	"github.com/contextweave/contextweave/versioned"
)

// buildNetwork runs version selection, then the builder, for one root.
func buildNetwork(cmd *cobra.Command, rootPath string) (*graph.BuildResult, error) {
	root, err := versioned.NewSelector(cfg.Versions).SelectRoot(rootPath)
	if err != nil {
		return nil, err
	}
	builder := graph.NewBuilder(resolver.NewFileResolver(nil), cfg.Network)
	return builder.Build(cmd.Context(), root)
}

// reportFailure logs a command failure plus any hints riding on the
// error (resolution suggestions, most commonly).
func reportFailure(action string, err error) {
	utils.Error("%s failed: %v", action, err)
	for _, hint := range errors.GetAllHints(err) {
		utils.Error("hint: %s", hint)
	}
}

// newBuildCmd creates the 'build' subcommand.
func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [root-file]",
		Short: "Build and validate the node network rooted at a file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := buildNetwork(cmd, args[0])
			if err != nil {
				reportFailure("build", err)
				exit(1)
				return
			}
			n := result.Network
			utils.User("build %s OK: %d nodes, %d bytes, root %s",
				result.BuildID, n.Len(), n.Size(), n.Root())
			for _, w := range result.Warnings {
				utils.Warn("unresolved reference %s -> %s: %v", w.NodeID, w.RefPath, w.Err)
			}
		},
	}
}
