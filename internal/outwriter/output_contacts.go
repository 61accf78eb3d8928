package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/internal/parquet"
	"github.com/huangsam/simbook/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteContacts outputs the phonebook, dispatching based on the output format configured.
func WriteContacts(contacts []schema.Contact, cfg *contract.Config) error {
	return dispatch(cfg, render{
		table: func(w io.Writer) error {
			return writeContactsTable(w, contacts, cfg)
		},
		json:    contacts,
		header:  []string{"position", "id", "name", "number"},
		records: contactRecords(contacts),
		parquet: func(outputPath string) error {
			return parquet.WriteParquet(parquet.ContactRows(contacts), outputPath)
		},
	})
}

func contactRecords(contacts []schema.Contact) [][]string {
	records := make([][]string, len(contacts))
	for i, c := range contacts {
		records[i] = []string{strconv.Itoa(i + 1), c.ID, c.Name, c.Number}
	}
	return records
}

// writeContactsTable generates and writes the human-readable table.
func writeContactsTable(w io.Writer, contacts []schema.Contact, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Name", "Number", "ID"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, c := range contacts {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(c.Name, nameWidth),
			c.Number,
			c.ID,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d contacts\n", len(contacts))
	return err
}
