package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsig/pkg/graph"
	pkgio "github.com/matzehuels/graphsig/pkg/io"
	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		graphOut string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "parse <signature|->",
		Short: "Parse a signature string into a colored tree",
		Long: `Parse a signature string into a colored tree.

Prints the normalized signature and its node count, height and colors.
With --graph the tree is folded back into a graph (nodes sharing a color
become one vertex) and written to the given file; the format follows the
file extension.

Use "-" to read the signature from stdin.`,
		Example: `  graphsig parse '[C]([C,1][C,1])'
  graphsig signature ring.json | graphsig parse - --graph rebuilt.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSignatureArg(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runParse(cmd.Context(), cmd, s, graphOut, asJSON)
		},
	}

	cmd.Flags().StringVarP(&graphOut, "graph", "g", "", "write the rebuilt graph to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, cmd *cobra.Command, s, graphOut string, asJSON bool) error {
	res, err := pipeline.ParseSignature(s, graphOut != "")
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("parsed signature", "nodes", res.Nodes, "height", res.Height)

	if graphOut != "" {
		g, err := graph.FromDocument(*res.Graph)
		if err != nil {
			return fmt.Errorf("rebuild graph: %w", err)
		}
		if err := pkgio.ExportFile(g, graphOut); err != nil {
			return err
		}
		printSuccess("Rebuilt graph with %d vertices", g.VertexCount())
		printFile(graphOut)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, res)
	}
	fmt.Fprintln(out, res.Signature)
	printKeyValue("Nodes", fmt.Sprint(res.Nodes))
	printKeyValue("Height", fmt.Sprint(res.Height))
	if len(res.Colors) > 0 {
		printKeyValue("Colors", fmt.Sprint(res.Colors))
	}
	return nil
}
