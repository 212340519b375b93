package board

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Interchange formatting: the historical table as a spreadsheet-openable
// blob, and the inverse bulk import that fills the client directory.

const exportTimeLayout = "2006-01-02 15:04:05"

var exportHeader = []string{
	"date", "seq", "client_name", "client_code", "address", "items",
	"status", "queued_at", "preparing_at", "ready_at", "dispatched_at",
	"cook", "courier",
}

// ExportCSV writes historical rows in the fixed column order. Cancelled
// orders never reach here; Historical already drops them.
func ExportCSV(w io.Writer, rows []HistoricalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, row := range rows {
		o := row.Order
		record := []string{
			o.BusinessDate,
			strconv.Itoa(row.DisplaySeq),
			o.ClientName,
			o.ClientCode,
			o.ClientAddress,
			o.ItemsText,
			o.Status,
			formatExportTime(o.QueuedAt),
			formatExportTime(o.PreparingAt),
			formatExportTime(o.ReadyAt),
			formatExportTime(o.DispatchedAt),
			o.Cook,
			o.Courier,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write export row for order %s: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportTimeLayout)
}

// ImportClientsCSV parses a name,code,address sheet into directory entries.
// A leading header row is skipped, blank names are skipped, short rows are
// padded. Entries are not yet persisted; the caller decides.
func ImportClientsCSV(r io.Reader) ([]*Client, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var clients []*Client
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read client import row %d: %w", line+1, err)
		}
		line++

		if line == 1 && looksLikeHeader(record) {
			continue
		}
		for len(record) < 3 {
			record = append(record, "")
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		c, err := NewClient(name, record[1], record[2])
		if err != nil {
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := Fold(record[0])
	return first == "name" || first == "nombre" || first == "client" || first == "cliente"
}
