package main

import (
	"github.com/spf13/cobra"

	"github.com/contextweave/contextweave/graph"
	"github.com/contextweave/contextweave/utils"
)

// newGraphCmd creates the 'graph' subcommand.
func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [root-file]",
		Short: "Visualize the node network as a Mermaid DAG",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := buildNetwork(cmd, args[0])
			if err != nil {
				reportFailure("build", err)
				exit(1)
				return
			}
			out, err := graph.ExportMermaid(result.Network)
			if err != nil {
				reportFailure("graph export", err)
				exit(1)
				return
			}
			utils.User("%s", out)
		},
	}
}
