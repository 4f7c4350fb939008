package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/intel"
	"github.com/matzehuels/gavtree/pkg/errors"
	gavio "github.com/matzehuels/gavtree/pkg/io"
	"github.com/matzehuels/gavtree/pkg/pipeline"
	"github.com/matzehuels/gavtree/pkg/render"
)

// vulnsCommand creates the vulns command.
func (c *CLI) vulnsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "vulns <groupId:artifactId:version>",
		Short: "Report known vulnerabilities of one version",
		Long: `Report the advisories affecting one version of an artifact, with the
version's stability grade and overall safety verdict.

An unreachable advisory database yields an empty report rather than an
error; check the log output with --verbose.`,
		Example: `  gavtree vulns org.apache.logging.log4j:log4j-core:2.14.1
  gavtree vulns com.fasterxml.jackson.core:jackson-databind:2.9.8 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseDataFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			vr, err := withSpinner(ctx, cmd.ErrOrStderr(), "Checking "+args[0], func() (*pipeline.VersionReport, string, error) {
				vr, err := runner.Assess(ctx, args[0])
				if err != nil {
					return nil, "", err
				}
				return vr, intel.BadgeFor(vr.Report).Label, nil
			})
			if err != nil {
				return err
			}
			return writeData(cmd.OutOrStdout(), f, vr, func(w io.Writer) { printVersionReport(w, vr) })
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(dataFormats, ", ")+" (default text)")
	completeValues(cmd, "format", dataFormats)
	return cmd
}

// intelCommand creates the intel command.
func (c *CLI) intelCommand() *cobra.Command {
	var (
		format      string
		versions    int
		refresh     bool
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "intel <groupId:artifactId>",
		Short: "Compare recent versions of an artifact",
		Long: `Assess the most recent versions of an artifact for known vulnerabilities
and stability, and recommend one: the safe release with the best stability
score, or the newest release when none is safe. A recommendation that is not
safe is shown with its safety verdict.

With --interactive, pick a version from the list and print its dependency
declaration for a build tool of your choice.`,
		Example: `  gavtree intel org.springframework:spring-core
  gavtree intel com.google.guava:guava --versions 20 -f json
  gavtree intel org.slf4j:slf4j-api -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseDataFormat(format)
			if err != nil {
				return err
			}
			group, artifactID, err := artifact.ParseName(args[0])
			if err != nil {
				return err
			}
			name := group + ":" + artifactID
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, err := withSpinner(ctx, cmd.ErrOrStderr(), "Assessing "+name, func() (*intel.Intelligence, string, error) {
				in, err := runner.Intelligence(ctx, group, artifactID, versions, refresh)
				if err != nil {
					return nil, "", err
				}
				return in, fmt.Sprintf("Assessed %d versions", len(in.Versions)), nil
			})
			if err != nil {
				return err
			}

			if interactive {
				return pickVersion(cmd, in, time.Now())
			}
			return writeData(cmd.OutOrStdout(), f, in, func(w io.Writer) { printIntelligence(w, in, time.Now()) })
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(dataFormats, ", ")+" (default text)")
	completeValues(cmd, "format", dataFormats)
	cmd.Flags().IntVar(&versions, "versions", intel.DefaultIntelligenceVersions, "number of recent versions to assess")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached version lists")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a version and print its dependency snippet")
	return cmd
}

// pickVersion runs the version picker, then the build tool picker, and
// prints the chosen snippet.
func pickVersion(cmd *cobra.Command, in *intel.Intelligence, now time.Time) error {
	opts := []tea.ProgramOption{tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.ErrOrStderr())}

	final, err := tea.NewProgram(NewVersionListModel(in, now), opts...).Run()
	if err != nil {
		return fmt.Errorf("version picker: %w", err)
	}
	picked := final.(VersionListModel).Selected
	if picked == nil {
		return nil
	}

	coord := artifact.Coordinate{Group: in.Group, Artifact: in.Artifact, Version: picked.Version}
	final, err = tea.NewProgram(NewSnippetListModel(coord), opts...).Run()
	if err != nil {
		return fmt.Errorf("snippet picker: %w", err)
	}
	tool := final.(SnippetListModel).Selected
	if tool == "" {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), artifact.Snippets(coord)[tool])
	return nil
}

// =============================================================================
// Text Output
// =============================================================================

func printVersionReport(w io.Writer, vr *pipeline.VersionReport) {
	r, a := vr.Report, vr.Assessment
	coord := artifact.Coordinate{Group: r.Group, Artifact: r.Artifact, Version: r.Version}

	fmt.Fprintln(w, StyleTitle.Render(coord.String()))
	printKeyValue(w, "Safety", safetyStyle(a.Safety).Render(a.Label))
	printKeyValue(w, "Stability", fmt.Sprintf("%s (score %.0f)", a.Grade, a.Score))
	printKeyValue(w, "Highest", severityStyle(r.Highest).Render(string(r.Highest)))
	printKeyValue(w, "Counts", fmt.Sprintf("%d critical · %d high · %d medium · %d low · %d unknown",
		r.Critical, r.High, r.Medium, r.Low, r.Unknown))

	if len(r.Advisories) > 0 {
		t := newTable("ID", "Severity", "Fixed in", "Summary")
		for _, adv := range r.Advisories {
			fixed := adv.FixedVersion
			if fixed == "" {
				fixed = "—"
			}
			t.Row(adv.ID, severityStyle(adv.Severity).Render(string(adv.Severity)), fixed, truncate(adv.Summary, 60))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Render())
	}
	if r.Disclaimer != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleDim.Render(r.Disclaimer))
	}
}

func printIntelligence(w io.Writer, in *intel.Intelligence, now time.Time) {
	fmt.Fprintln(w, StyleTitle.Render(in.Group+":"+in.Artifact))
	switch r := in.Recommended; {
	case r == nil:
		printKeyValue(w, "Recommended", StyleDim.Render("none, no versions assessed"))
	case r.Safety == intel.SafetySafe:
		printKeyValue(w, "Recommended", StyleSuccess.Render(r.Version))
	default:
		printKeyValue(w, "Recommended", StyleWarning.Render(r.Version)+" "+
			safetyStyle(r.Safety).Render(fmt.Sprintf("(%s: %s)", r.Safety, r.Label)))
		printWarning(w, "no safe release among assessed versions")
	}
	fmt.Fprintln(w)

	t := newTable("Version", "Released", "Grade", "Score", "Vulns", "Highest", "Safety")
	for _, a := range in.Versions {
		version := a.Version
		if !a.IsRelease {
			version += " " + StyleDim.Render("(pre)")
		}
		t.Row(
			version,
			formatRelativeTime(a.Timestamp, now),
			string(a.Grade),
			fmt.Sprintf("%.0f", a.Score),
			fmt.Sprintf("%d", a.VulnerabilityCount),
			severityStyle(a.HighestSeverity).Render(string(a.HighestSeverity)),
			safetyStyle(a.Safety).Render(a.Label),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// =============================================================================
// Data Formats
// =============================================================================

// parseDataFormat accepts the formats that apply to non-tree results.
func parseDataFormat(s string) (render.Format, error) {
	f, err := render.ParseFormat(s)
	if err != nil {
		return "", err
	}
	switch f {
	case render.FormatText, render.FormatJSON, render.FormatYAML:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "format %q is only available for trees (use %s)",
		s, strings.Join(dataFormats, ", "))
}

// writeData writes v as JSON or YAML, or calls text for the text format.
func writeData(w io.Writer, f render.Format, v any, text func(io.Writer)) error {
	switch f {
	case render.FormatJSON:
		return gavio.WriteJSON(v, w)
	case render.FormatYAML:
		return gavio.WriteYAML(v, w)
	default:
		text(w)
		return nil
	}
}
