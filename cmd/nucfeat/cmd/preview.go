package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/histoquant/nucfeat/internal/features"
)

// previewTable prints the first n rows of a feature table to stdout.
func previewTable(t *features.FeatureTable, n int) {
	names := t.ColumnNames()
	rowLabels := t.RowLabels()
	if n > len(rowLabels) {
		n = len(rowLabels)
	}

	table := tablewriter.NewWriter(os.Stdout)

	header := make([]any, 0, len(names)+1)
	header = append(header, "Label")
	for _, name := range names {
		header = append(header, name)
	}
	table.Header(header...)

	for i := 0; i < n; i++ {
		row := make([]any, 0, len(names)+1)
		row = append(row, strconv.Itoa(rowLabels[i]))
		for _, name := range names {
			v, _ := t.Value(i, name)
			row = append(row, strconv.FormatFloat(v, 'g', 6, 64))
		}
		table.Append(row...)
	}

	table.Render()
}
