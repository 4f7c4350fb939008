package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gavtree/pkg/core/resolve"
	"github.com/matzehuels/gavtree/pkg/errors"
	gavio "github.com/matzehuels/gavtree/pkg/io"
	"github.com/matzehuels/gavtree/pkg/pipeline"
	"github.com/matzehuels/gavtree/pkg/render"
)

// treeFlags holds the flags shared by resolve and analyze.
type treeFlags struct {
	format   string
	output   string
	repos    []string
	depth    int
	maxNodes int
	refresh  bool
	detailed bool
}

func (f *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(formatNames(), ", ")+" (default text)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().StringSliceVar(&f.repos, "repo", nil, "additional https repository (repeatable)")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "maximum resolution depth (default from config)")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "maximum number of nodes (default from config)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show scopes on text lines and graph edges")
	completeValues(cmd, "format", formatNames())
}

// treeOptions builds tree options, filling limits from the configuration.
func (c *CLI) treeOptions(f *treeFlags) pipeline.TreeOptions {
	cfg := c.settings()
	opts := pipeline.TreeOptions{
		Repositories: f.repos,
		MaxDepth:     f.depth,
		MaxNodes:     f.maxNodes,
		Refresh:      f.refresh,
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = cfg.Resolve.MaxDepth
	}
	if opts.MaxNodes == 0 {
		opts.MaxNodes = cfg.Resolve.MaxNodes
	}
	return opts
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var flags treeFlags
	cmd := &cobra.Command{
		Use:   "resolve <groupId:artifactId:version>",
		Short: "Resolve the dependency tree of an artifact",
		Long: `Resolve the transitive dependency tree of a published Maven artifact.

Nodes that could not be resolved stay in the tree with their status:
CONFLICT for a version omitted in favor of a nearer one, OPTIONAL for
optional dependencies, MISSING when no repository has the artifact and
ERROR when its manifest could not be processed.`,
		Example: `  gavtree resolve org.springframework:spring-core:6.1.0
  gavtree resolve com.google.guava:guava:33.0.0-jre -f dot -o guava.dot
  gavtree resolve org.acme:app:1.0 --repo https://repo.acme.org/maven2 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			opts := c.treeOptions(&flags)
			opts.Coordinate = args[0]
			return c.runTree(cmd, opts, format, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags   treeFlags
		modules bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <pom.xml>",
		Short: "Resolve the dependency tree of a pom.xml",
		Long: `Resolve the dependency tree declared by a local pom.xml. Use "-" to read
the manifest from stdin.

With --modules, each module declared by an aggregator POM becomes a LOCAL
child of the merged tree; modules are not fetched from any repository.`,
		Example: `  gavtree analyze pom.xml
  gavtree analyze pom.xml --modules -f yaml -o tree.yaml
  cat pom.xml | gavtree analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			data, err := readManifest(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			opts := c.treeOptions(&flags)
			opts.Manifest = data
			opts.Modules = modules
			return c.runTree(cmd, opts, format, &flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&modules, "modules", false, "aggregate the modules of a multi-module POM")
	return cmd
}

// runTree resolves opts and writes the tree.
func (c *CLI) runTree(cmd *cobra.Command, opts pipeline.TreeOptions, format render.Format, flags *treeFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	stderr := cmd.ErrOrStderr()

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	subject := opts.Coordinate
	if subject == "" {
		subject = "manifest"
	}
	prog := newProgress(logger)
	res, err := withSpinner(ctx, stderr, "Resolving "+subject, func() (*pipeline.TreeResult, string, error) {
		res, err := runner.Resolve(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return res, "Resolved " + res.Tree.Name(), nil
	})
	if err != nil {
		return err
	}
	prog.done("resolved", "subject", res.Subject, "nodes", res.Tree.Size(), "cached", res.CacheHit)

	if err := c.writeTree(ctx, cmd.OutOrStdout(), res, format, flags); err != nil {
		return err
	}
	if res.Modules != nil {
		printDetail(stderr, "%d modules", len(res.Modules.Modules))
	}
	printStats(stderr, render.Summary(res.Tree), res.CacheHit)
	if flags.output != "" {
		printFile(stderr, flags.output)
	}
	if res.Tree.Status == resolve.StatusError {
		return errors.New(errors.ErrCodeInvalidInput, "%s could not be processed: %s", res.Subject, res.Tree.Message)
	}
	warnStatuses(stderr, res.Tree)
	return nil
}

// writeTree renders a result to stdout or the --output file. JSON and YAML
// of a module aggregation carry the full module listing.
func (c *CLI) writeTree(ctx context.Context, stdout io.Writer, res *pipeline.TreeResult, format render.Format, flags *treeFlags) (err error) {
	w := stdout
	if flags.output != "" {
		f, ferr := os.Create(flags.output)
		if ferr != nil {
			return fmt.Errorf("create output file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if res.Modules != nil {
		switch format {
		case render.FormatJSON:
			return gavio.WriteJSON(res.Modules, w)
		case render.FormatYAML:
			return gavio.WriteYAML(res.Modules, w)
		}
	}
	opts := render.Options{
		Detailed: flags.detailed,
		Styled:   flags.output == "" && isTerminal(stdout),
	}
	return render.Tree(ctx, w, res.Tree, format, opts)
}

// warnStatuses flags a root that was not found. An ERROR root is returned
// as an error instead so the command exits non-zero.
func warnStatuses(w io.Writer, tree *resolve.Node) {
	if tree.Status == resolve.StatusMissing {
		printWarning(w, "%s was not found in any repository", tree.Name())
	}
}

// readManifest reads a manifest file, or stdin for "-". Oversize input is
// rejected without reading it all.
func readManifest(stdin io.Reader, path string) ([]byte, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		if ext := strings.ToLower(filepath.Ext(path)); ext != ".xml" && ext != ".pom" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "manifest must be a .xml or .pom file: %s", path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open manifest")
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxManifestSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read manifest")
	}
	if err := errors.ValidateManifestSize(len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

func formatNames() []string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return names
}
