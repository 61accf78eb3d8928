package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/parquet"
	"github.com/huangsam/simbook/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DateTimeFormat is the timestamp layout of table and CSV output.
const DateTimeFormat = "2006-01-02 15:04:05"

// WriteCapacity outputs a capacity report, dispatching based on the output format configured.
func WriteCapacity(report schema.CapacityReport, cfg *contract.Config) error {
	return dispatch(cfg, render{
		table: func(w io.Writer) error {
			return writeCapacityTable(w, report)
		},
		json:   report,
		header: []string{"identity", "max_name_length", "source", "attempts", "cached"},
		records: [][]string{{
			string(report.Identity),
			strconv.Itoa(report.MaxNameLength),
			string(report.Source),
			strconv.Itoa(report.Attempts),
			strconv.FormatBool(report.Cached),
		}},
		parquet: func(outputPath string) error {
			entry := schema.CapacityEntry{
				Identity:      report.Identity,
				MaxNameLength: report.MaxNameLength,
				UpdatedAt:     time.Now(),
			}
			return parquet.WriteParquet(parquet.CapacityRows([]schema.CapacityEntry{entry}), outputPath)
		},
	})
}

func formatLimit(limit int) string {
	if limit <= 0 {
		return "unknown"
	}
	return strconv.Itoa(limit)
}

// writeCapacityTable writes the report as a two-column table.
func writeCapacityTable(w io.Writer, report schema.CapacityReport) error {
	return writeKeyValueTable(w, [][]string{
		{"Identity", string(report.Identity)},
		{"Max Name Length", formatLimit(report.MaxNameLength)},
		{"Source", string(report.Source)},
		{"Probe Attempts", strconv.Itoa(report.Attempts)},
		{"Cached", strconv.FormatBool(report.Cached)},
	})
}

// WriteCacheEntries outputs persisted capacities, dispatching based on the output format configured.
func WriteCacheEntries(entries []schema.CapacityEntry, cfg *contract.Config) error {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{
			string(e.Identity),
			strconv.Itoa(e.MaxNameLength),
			e.UpdatedAt.Format(DateTimeFormat),
		}
	}
	if entries == nil {
		entries = []schema.CapacityEntry{}
	}

	return dispatch(cfg, render{
		table: func(w io.Writer) error {
			return writeCacheEntriesTable(w, entries)
		},
		json:    entries,
		header:  []string{"identity", "max_name_length", "updated_at"},
		records: records,
		parquet: func(outputPath string) error {
			return parquet.WriteParquet(parquet.CapacityRows(entries), outputPath)
		},
	})
}

func writeCacheEntriesTable(w io.Writer, entries []schema.CapacityEntry) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Identity", "Max Name Length", "Updated"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			string(e.Identity),
			strconv.Itoa(e.MaxNameLength),
			e.UpdatedAt.Format(DateTimeFormat),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d cached stores\n", len(entries))
	return err
}

// WriteCardInfo outputs the state of an emulated card.
func WriteCardInfo(info schema.CardInfo, cfg *contract.Config) error {
	return dispatch(cfg, render{
		table: func(w io.Writer) error {
			return writeKeyValueTable(w, [][]string{
				{"Serial", info.Serial},
				{"Endpoint", info.Endpoint},
				{"Used Slots", strconv.Itoa(info.UsedSlots)},
				{"Capacity", strconv.Itoa(info.Capacity)},
			})
		},
		json:   info,
		header: []string{"serial", "endpoint", "used_slots", "capacity"},
		records: [][]string{{
			info.Serial,
			info.Endpoint,
			strconv.Itoa(info.UsedSlots),
			strconv.Itoa(info.Capacity),
		}},
	})
}

func writeKeyValueTable(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
