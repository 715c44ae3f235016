package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// errNoDataRows flags a structurally valid file with nothing beneath the
// header row.
var errNoDataRows = errors.New("no data rows")

// readCSV reads a header-first CSV stream into raw records. Rows shorter
// than the header are padded, extra cells are dropped.
func readCSV(r io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, errNoDataRows
	}

	return rowsToRecords(rows), nil
}

// readXLSX reads the first sheet of an Excel workbook into raw records,
// treating the first row as the header.
func readXLSX(r io.Reader) ([]models.RawRecord, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening Excel file: %w", err)
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Excel workbook")
		}
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], errNoDataRows)
	}

	return rowsToRecords(rows), nil
}

// readJSON reads an array of flat objects into raw records. Nested values
// are ignored, scalars are rendered as strings.
func readJSON(r io.Reader) ([]models.RawRecord, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("error decoding JSON: %w", err)
	}
	if len(rows) == 0 {
		return nil, errNoDataRows
	}

	records := make([]models.RawRecord, 0, len(rows))
	for _, row := range rows {
		record := make(models.RawRecord, len(row))
		for key, value := range row {
			if s, ok := scalarString(value); ok {
				record[key] = s
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// rowsToRecords maps tabular rows onto the header row. Blank header cells
// and fully empty rows are skipped.
func rowsToRecords(rows [][]string) []models.RawRecord {
	header := rows[0]
	records := make([]models.RawRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := make(models.RawRecord, len(header))
		empty := true
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			record[name] = cell
			if cell != "" {
				empty = false
			}
		}
		if !empty {
			records = append(records, record)
		}
	}
	return records
}
