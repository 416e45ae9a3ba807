package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/l3aro/igv-query/internal/log"
	"github.com/l3aro/igv-query/pkg/igv"
	"github.com/l3aro/igv-query/pkg/loader"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List graphs in an IGV dump",
	Long: `Parses an IGV XML dump and prints one row per selected graph with its
ordinal id, enclosing method short name and compiler phase name. Graph
contents are not loaded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		f, err := resolveFilter(cmd, cfg)
		if err != nil {
			return err
		}

		logger := log.Default()
		logger.Debug("parsing input file", "path", args[0])
		doc, err := igv.ParseFile(args[0])
		if err != nil {
			return err
		}

		logger.Debug("converting XML to graphs")
		graphs, err := loader.Load(doc, loader.Options{Filter: f, ListOnly: true})
		if err != nil {
			return err
		}

		fmt.Print(formatTable(graphTable(graphs)))
		return nil
	},
}

// graphTable builds the header plus one (id, method, phase) row per graph,
// in ascending id order.
func graphTable(graphs loader.Collection) [][]string {
	rows := [][]string{{"id", "method", "phase"}}
	for _, id := range graphs.IDs() {
		entry := graphs[id]
		rows = append(rows, []string{strconv.Itoa(id), entry.Method, entry.Phase})
	}
	return rows
}

// formatTable renders rows as a left-aligned table, columns padded to their
// widest cell and separated by two spaces.
func formatTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	listCmd.Flags().StringP("filter", "f", "", "Predicate selecting which graphs to list")
	RootCmd.AddCommand(listCmd)
}
