package cli

import (
	"strings"

	"github.com/spf13/cobra"

	gavio "github.com/matzehuels/gavtree/pkg/io"
	"github.com/matzehuels/gavtree/pkg/pipeline"
	"github.com/matzehuels/gavtree/pkg/render"
)

// renderCommand creates the render command, which converts an exported
// tree without touching the network.
func (c *CLI) renderCommand() *cobra.Command {
	var flags treeFlags
	cmd := &cobra.Command{
		Use:   "render <tree.json|tree.yaml>",
		Short: "Render an exported tree in another format",
		Long: `Render a tree previously written with "resolve -f json" or "-f yaml" as
text, DOT, SVG, JSON or YAML. No registry access is needed.`,
		Example: `  gavtree resolve org.slf4j:slf4j-api:2.0.9 -f json -o tree.json
  gavtree render tree.json -f svg -o tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			tree, err := gavio.ImportTree(args[0])
			if err != nil {
				return err
			}
			res := &pipeline.TreeResult{Kind: pipeline.KindCoordinate, Subject: tree.String(), Tree: tree}
			if err := c.writeTree(cmd.Context(), cmd.OutOrStdout(), res, format, &flags); err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			printDetail(stderr, "%s", render.Summary(tree))
			if flags.output != "" {
				printFile(stderr, flags.output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: "+strings.Join(formatNames(), ", ")+" (default text)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show scopes on text lines and graph edges")
	completeValues(cmd, "format", formatNames())
	// Rendering is offline; a config file is not required.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if c.verbose {
			c.SetLogLevel(LogDebug)
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}
	return cmd
}
