package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/philipparndt/tokenviz/pkg/tokens"
)

func newTableCommand(opts *rootOptions) *cobra.Command {
	var (
		search string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "table <file>",
		Short: "List the records as a table",
		Long:  "List the records with their particle index. --search keeps records whose ID or text contains the term.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := tokens.Parse(args[0])
			if err != nil {
				return err
			}
			indices := tokens.Filter(set.Records, search)
			opts.logger.Debug().Str("search", search).Int("matches", len(indices)).Msg("filtered")

			fmt.Fprintln(cmd.OutOrStdout(), recordTable(set.Records, indices, width))
			fmt.Fprintln(cmd.OutOrStdout(), keyStyle.PaddingLeft(0).Render(
				fmt.Sprintf("%d of %d records", len(indices), len(set.Records))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only list records whose ID or text contains this")
	cmd.Flags().IntVar(&width, "text-width", 40, "maximum characters of token text")
	return cmd
}

func recordTable(records []tokens.Record, indices []int, textWidth int) string {
	rows := make([][]string, 0, len(indices))
	for _, i := range indices {
		r := records[i]
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(r.ID),
			tokens.DisplayText(r.Text, textWidth),
			fmt.Sprintf("%.3f", r.Vector.X),
			fmt.Sprintf("%.3f", r.Vector.Y),
			fmt.Sprintf("%.3f", r.Vector.Z),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("#", "ID", "Text", "X", "Y", "Z").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(rows) {
				id, _ := strconv.Atoi(rows[row][1])
				return cellStyle.Foreground(idColor(id))
			}
			return cellStyle
		}).
		String()
}
