package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/parquet"
	"github.com/huangsam/simbook/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePreviews outputs contacts next to their normalized form for a store
// whose maximum name length is limit (0 when unknown).
func WritePreviews(previews []schema.NormalizedContact, limit int, cfg *contract.Config) error {
	plainLabel := func(p schema.NormalizedContact) string {
		return contract.GetPlainLabel(limit, p.Truncated)
	}

	type jsonPreview struct {
		Label string `json:"label"`
		schema.NormalizedContact
	}
	output := make([]jsonPreview, len(previews))
	records := make([][]string, len(previews))
	for i, p := range previews {
		output[i] = jsonPreview{Label: plainLabel(p), NormalizedContact: p}
		records[i] = []string{
			p.Original.Name,
			p.Original.Number,
			p.Normalized.Name,
			p.Normalized.Number,
			plainLabel(p),
		}
	}

	return dispatch(cfg, render{
		table: func(w io.Writer) error {
			return writePreviewTable(w, previews, limit, cfg)
		},
		json:    output,
		header:  []string{"name", "number", "normalized_name", "normalized_number", "label"},
		records: records,
		parquet: func(outputPath string) error {
			return parquet.WriteParquet(parquet.NormalizedRows(previews, plainLabel), outputPath)
		},
	})
}

// writePreviewTable generates and writes the human-readable table.
func writePreviewTable(w io.Writer, previews []schema.NormalizedContact, limit int, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Stored As", "Number", "Stored As", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, p := range previews {
		label := contract.GetPlainLabel(limit, p.Truncated)
		if cfg.UseColors {
			label = contract.GetColorLabel(limit, p.Truncated)
		}
		data = append(data, []string{
			contract.TruncateText(p.Original.Name, nameWidth),
			contract.TruncateText(p.Normalized.Name, nameWidth),
			p.Original.Number,
			p.Normalized.Number,
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if limit <= 0 {
		_, err := fmt.Fprintln(w, "Name limit unknown, names are stored as given")
		return err
	}
	_, err := fmt.Fprintf(w, "Name limit: %d characters\n", limit)
	return err
}
