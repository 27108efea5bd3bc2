package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceRow is one raw spreadsheet row keyed by canonical field name. It is
// ephemeral: rows exist only for the duration of a single sync run.
type SourceRow map[string]string

// RowNumber returns the 1-indexed source row number recorded at parse time
func (r SourceRow) RowNumber() int {
	n, _ := strconv.Atoi(r[RowKey])
	return n
}

// ParseSource reads the catalog spreadsheet at path and returns its rows
// with headers already resolved to canonical field names. CSV and XLSX are
// supported, chosen by file extension.
func ParseSource(path string) ([]SourceRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return parseCSV(file)
	}
	return parseXLSX(file)
}

func parseCSV(file io.Reader) ([]SourceRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	fields := MapHeaders(headers)

	var rows []SourceRow
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}
		rows = append(rows, mapRecord(fields, record, lineNum+1))
		lineNum++
	}

	return rows, nil
}

func parseXLSX(file io.Reader) ([]SourceRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	// Prefer a "Products" sheet if one exists
	for _, name := range sheets {
		if strings.EqualFold(name, "Products") {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	fields := MapHeaders(excelRows[0])

	var rows []SourceRow
	for rowIdx, excelRow := range excelRows[1:] {
		rows = append(rows, mapRecord(fields, excelRow, rowIdx+2))
	}

	return rows, nil
}

// mapRecord builds a SourceRow from one positional record. Columns whose
// header did not resolve are dropped here.
func mapRecord(fields, record []string, rowNum int) SourceRow {
	row := make(SourceRow)
	for i, value := range record {
		if i < len(fields) && fields[i] != "" {
			row[fields[i]] = strings.TrimSpace(value)
		}
	}
	row[RowKey] = strconv.Itoa(rowNum)
	return row
}
