package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/errors"
	"github.com/matzehuels/gavtree/pkg/integrations/maven"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		format  string
		snippet string
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "info <groupId:artifactId[:version]>",
		Short: "Show registry details of an artifact",
		Long: `Show the version history of an artifact and the descriptive fields of one
version's POM. Without a version, the latest one is described.`,
		Example: `  gavtree info org.slf4j:slf4j-api
  gavtree info org.slf4j:slf4j-api:2.0.9 --snippet gradle`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseDataFormat(format)
			if err != nil {
				return err
			}
			if snippet != "" && !slices.Contains(artifact.SnippetFormats, snippet) {
				return errors.New(errors.ErrCodeInvalidInput, "unknown snippet format %q (use %s)",
					snippet, strings.Join(artifact.SnippetFormats, ", "))
			}
			group, artifactID, version, err := parseNameVersion(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			info, err := withSpinner(ctx, cmd.ErrOrStderr(), "Looking up "+args[0], func() (*maven.ArtifactInfo, string, error) {
				info, err := runner.Info(ctx, group, artifactID, version, refresh)
				if err != nil {
					return nil, "", err
				}
				return info, fmt.Sprintf("Found %d versions", len(info.Versions)), nil
			})
			if err != nil {
				return err
			}
			return writeData(cmd.OutOrStdout(), f, info, func(w io.Writer) { printArtifactInfo(w, info, snippet) })
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(dataFormats, ", ")+" (default text)")
	completeValues(cmd, "format", dataFormats)
	cmd.Flags().StringVar(&snippet, "snippet", "maven", "build tool for the dependency snippet: "+strings.Join(artifact.SnippetFormats, ", "))
	completeValues(cmd, "snippet", artifact.SnippetFormats)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")
	return cmd
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		format  string
		page    int
		size    int
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the registry for artifacts",
		Long: `Search the central registry index. Queries are free text, or Solr field
queries such as g:org.apache.* or a:commons-lang3.`,
		Example: `  gavtree search jackson
  gavtree search "g:org.apache.commons" --size 50 --page 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseDataFormat(format)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := withSpinner(ctx, cmd.ErrOrStderr(), "Searching "+query, func() (*maven.SearchResult, string, error) {
				res, err := runner.Search(ctx, query, page, size, refresh)
				if err != nil {
					return nil, "", err
				}
				return res, fmt.Sprintf("%d matches", res.Total), nil
			})
			if err != nil {
				return err
			}
			return writeData(cmd.OutOrStdout(), f, res, func(w io.Writer) { printSearchResult(w, res) })
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(dataFormats, ", ")+" (default text)")
	completeValues(cmd, "format", dataFormats)
	cmd.Flags().IntVar(&page, "page", 0, "zero-based result page")
	cmd.Flags().IntVar(&size, "size", maven.DefaultSearchSize, fmt.Sprintf("results per page (max %d)", maven.MaxSearchSize))
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")
	return cmd
}

// parseNameVersion splits "group:artifact" or "group:artifact:version".
func parseNameVersion(s string) (group, artifactID, version string, err error) {
	if strings.Count(s, ":") >= 2 {
		c, err := artifact.ParseCoordinate(s)
		if err != nil {
			return "", "", "", err
		}
		return c.Group, c.Artifact, c.Version, nil
	}
	group, artifactID, err = artifact.ParseName(s)
	return group, artifactID, "", err
}

// =============================================================================
// Text Output
// =============================================================================

func printArtifactInfo(w io.Writer, info *maven.ArtifactInfo, snippet string) {
	title := info.Group + ":" + info.Artifact
	if info.Name != "" {
		title += "  " + StyleDim.Render(info.Name)
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	if info.Description != "" {
		fmt.Fprintln(w, StyleDim.Render(truncate(info.Description, 100)))
	}
	fmt.Fprintln(w)

	printKeyValue(w, "Version", info.Version)
	printKeyValue(w, "Latest", info.Latest)
	printKeyValue(w, "Recommended", info.Recommended)
	printKeyValue(w, "Packaging", info.Packaging)
	if info.URL != "" {
		printKeyValue(w, "URL", StyleLink.Render(info.URL))
	}
	if len(info.Licenses) > 0 {
		names := make([]string, len(info.Licenses))
		for i, l := range info.Licenses {
			names[i] = l.Name
		}
		printKeyValue(w, "Licenses", strings.Join(names, ", "))
	}
	printKeyValue(w, "Versions", StyleNumber.Render(fmt.Sprintf("%d", len(info.Versions))))
	if len(info.Versions) > 0 && !info.Versions[0].Timestamp.IsZero() {
		printKeyValue(w, "Updated", info.Versions[0].Timestamp.Format(time.DateOnly))
	}

	if s := info.Snippets[snippet]; s != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s)
	}
}

func printSearchResult(w io.Writer, res *maven.SearchResult) {
	if len(res.Artifacts) == 0 {
		printInfo(w, "No artifacts match %q", res.Query)
		return
	}
	t := newTable("Artifact", "Latest", "Packaging", "Versions", "Updated")
	for _, h := range res.Artifacts {
		updated := ""
		if !h.Updated.IsZero() {
			updated = h.Updated.Format(time.DateOnly)
		}
		t.Row(h.Group+":"+h.Artifact, h.LatestVersion, h.Packaging, fmt.Sprintf("%d", h.VersionCount), updated)
	}
	fmt.Fprintln(w, t.Render())
	shown := res.Page*res.Size + len(res.Artifacts)
	printDetail(w, "%d-%d of %d (page %d)", res.Page*res.Size+1, shown, res.Total, res.Page)
}
