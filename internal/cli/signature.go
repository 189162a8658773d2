package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// signatureCommand creates the signature command.
func (c *CLI) signatureCommand() *cobra.Command {
	var (
		flags sigFlags
		root  int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "signature <graph>",
		Short: "Compute the signature of a root vertex",
		Long: `Compute the canonical signature of a root vertex.

The graph is read from a JSON, TOML or YAML node-link file, or as JSON from
stdin when the argument is "-". With --all every vertex is used as root in
turn and one "index<TAB>signature" line is printed per vertex.

Results are cached; --refresh recomputes them.`,
		Example: `  graphsig signature benzene.json --root 0
  graphsig signature benzene.json --all --height 2
  cat graph.json | graphsig signature - --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && cmd.Flags().Changed("root") {
				return fmt.Errorf("--root and --all are mutually exclusive")
			}
			opts := c.signatureOptions(cmd, &flags)
			return c.runSignature(cmd.Context(), cmd, args[0], root, all, opts, flags.asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&root, "root", "r", 0, "root vertex index")
	cmd.Flags().BoolVar(&all, "all", false, "compute the signature of every vertex")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print the uncolored signature instead of the canonical one")

	return cmd
}

func (c *CLI) runSignature(ctx context.Context, cmd *cobra.Command, input string, root int, all bool, opts pipeline.Options, asJSON bool) error {
	g, err := loadGraph(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	roots := []int{root}
	if all {
		roots = allVertices(g)
	}

	out := cmd.OutOrStdout()
	results := make([]*pipeline.SignatureResult, 0, len(roots))
	hits := 0
	for _, r := range roots {
		res, hit, err := runner.SignatureWithCacheInfo(ctx, g, r, opts)
		if err != nil {
			return fmt.Errorf("signature of vertex %d: %w", r, err)
		}
		if hit {
			hits++
		}
		results = append(results, res)
	}

	printStats(g.VertexCount(), g.EdgeCount(), hits == len(roots))

	switch {
	case asJSON && all:
		return writeJSON(out, results)
	case asJSON:
		return writeJSON(out, results[0])
	case all:
		for _, res := range results {
			fmt.Fprintf(out, "%d\t%s\n", res.Root, res.Signature)
		}
	default:
		fmt.Fprintln(out, results[0].Signature)
	}
	return nil
}

// labelCommand creates the label command.
func (c *CLI) labelCommand() *cobra.Command {
	var (
		flags sigFlags
		root  int
	)

	cmd := &cobra.Command{
		Use:   "label <graph>",
		Short: "Compute the canonical labelling induced by a root vertex",
		Long: `Compute the canonical labelling induced by a root vertex.

Prints one label per vertex, in vertex order. Vertices outside the
signature height get -1. At the default unbounded height the labelling
covers the root's connected component, and two such components are
isomorphic exactly when relabelling each by its labelling yields the same
graph.`,
		Example: `  graphsig label benzene.json --root 0`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.signatureOptions(cmd, &flags)
			return c.runLabel(cmd.Context(), cmd, args[0], root, opts, flags.asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&root, "root", "r", 0, "root vertex index")

	return cmd
}

func (c *CLI) runLabel(ctx context.Context, cmd *cobra.Command, input string, root int, opts pipeline.Options, asJSON bool) error {
	g, err := loadGraph(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, hit, err := runner.LabellingWithCacheInfo(ctx, g, root, opts)
	if err != nil {
		return fmt.Errorf("labelling: %w", err)
	}
	printStats(g.VertexCount(), g.EdgeCount(), hit)

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, res)
	}
	fmt.Fprintln(out, formatLabelling(res.Labelling))
	return nil
}

func formatLabelling(labels []int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, " ")
}

func allVertices(g *graph.Graph) []int {
	vs := make([]int, g.VertexCount())
	for i := range vs {
		vs[i] = i
	}
	return vs
}
