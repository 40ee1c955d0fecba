package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/tokenviz/pkg/analysis"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

func newInfoCommand(opts *rootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Display statistics about a records file",
		Long:  "Show record and token counts, the spread of the vectors per axis and the most frequent token IDs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := tokens.Parse(args[0])
			if err != nil {
				return err
			}
			result, err := analysis.Analyze(set.Records)
			if err != nil {
				return err
			}
			opts.logger.Debug().Int("records", result.Count).Msg("analyzed")
			fmt.Fprint(cmd.OutOrStdout(), formatInfo(set.Name, args[0], result, top))
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "number of most frequent token IDs to list")
	return cmd
}

func formatInfo(name, file string, r *analysis.Result, top int) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(titleStyle.Render("Token Records"))
	line(keyValue("Name", name))
	line(keyValue("File", file))
	line("")

	line(sectionStyle.Render("Records"))
	line(keyValue("Count", strconv.Itoa(r.Count)))
	line(keyValue("Unique IDs", strconv.Itoa(r.UniqueIDs)))
	line(keyValue("Empty text", strconv.Itoa(r.Symbols)))
	collisions := strconv.Itoa(r.HueCollisions)
	if r.HueCollisions > 0 {
		collisions = warnStyle.Render(collisions + " IDs share a color")
	}
	line(keyValue("Hue clashes", collisions))
	line("")

	line(sectionStyle.Render("Bounding Box"))
	line(keyValue("Min", analysis.FormatVector(r.BoundingBox.Min)))
	line(keyValue("Max", analysis.FormatVector(r.BoundingBox.Max)))
	line(keyValue("Size", analysis.FormatVector(r.Dimensions)))
	line(keyValue("Diagonal", fmt.Sprintf("%.3f", r.BoundingBox.Diagonal())))
	line(keyValue("Centroid", analysis.FormatVector(r.Centroid)))
	line("")

	line(sectionStyle.Render("Axes"))
	for _, axis := range []struct {
		name  string
		stats analysis.AxisStats
	}{{"X", r.X}, {"Y", r.Y}, {"Z", r.Z}} {
		line(keyValue(axis.name, fmt.Sprintf("mean %.3f  sd %.3f  range [%.3f, %.3f]",
			axis.stats.Mean, axis.stats.StdDev, axis.stats.Min, axis.stats.Max)))
	}
	line(keyValue("Norm", fmt.Sprintf("mean %.3f  max %.3f", r.MeanNorm, r.MaxNorm)))

	if top > 0 {
		line("")
		line(sectionStyle.Render("Most Frequent IDs"))
		for _, c := range r.Top(top) {
			id := valueStyle.Foreground(idColor(c.ID)).Render(strconv.Itoa(c.ID))
			line(keyStyle.Render("") + id + " " + valueStyle.Render(fmt.Sprintf("x%d", c.Count)))
		}
	}
	return b.String()
}
