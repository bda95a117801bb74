package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/render"
	"github.com/contextweave/contextweave/utils"
)

// newRenderCmd creates the 'render' subcommand.
func newRenderCmd() *cobra.Command {
	var (
		mode         string
		targetFormat string
		varFlags     []string
	)
	cmd := &cobra.Command{
		Use:   "render [root-file]",
		Short: "Render the node network into one output document",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := buildNetwork(cmd, args[0])
			if err != nil {
				reportFailure("build", err)
				exit(1)
				return
			}
			variables := make(map[string]string, len(varFlags))
			for _, kv := range varFlags {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					utils.Error("invalid --var %q, expected key=value", kv)
					exit(1)
					return
				}
				variables[k] = v
			}
			out, err := render.NewRenderer(result.Network).Render(cmd.Context(), render.Options{
				TargetFormat: targetFormat,
				Mode:         mode,
				Variables:    variables,
			})
			if err != nil {
				reportFailure("render", err)
				exit(1)
				return
			}
			utils.User("%s", out)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", constants.RenderModeFull, "render mode: full or file_first")
	cmd.Flags().StringVar(&targetFormat, "format", constants.FormatMarkdown, "target format: markdown, yaml or json")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "variable as key=value; repeatable, keys may be scope-qualified")
	return cmd
}
