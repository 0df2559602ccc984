package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of a workbook into rows, using the first
// row as the header. Unrecognized columns are ignored.
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	return rowsFromTable(raw[0], raw[1:]), nil
}

// ReadCSVFile reads a comma-separated file with a header row into rows.
func ReadCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var table [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv record: %w", err)
		}
		table = append(table, record)
	}

	return rowsFromTable(header, table), nil
}

// rowsFromTable maps header cells to canonical columns and builds one Row
// per data line. Fully empty lines are dropped.
func rowsFromTable(header []string, data [][]string) []Row {
	colMap := make(map[int]string, len(header))
	for i, h := range header {
		if canonical := canonicalHeader(h); canonical != "" {
			colMap[i] = canonical
		}
	}

	rows := make([]Row, 0, len(data))
	for _, record := range data {
		row := Row{}
		for i, cell := range record {
			col, ok := colMap[i]
			if !ok || cell == "" {
				continue
			}
			row[col] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
