package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"sgsalary/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Table holds raw rows keyed by header name, before any cleaning.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// RawRow maps a header name to the cell's string value.
type RawRow map[string]string

// Reader loads a delimited or Excel file into a Table
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that handles both CSV and Excel files
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the source file. It fails with a DATA_LOAD_ERROR when the
// file is missing, unreadable, or has no parseable data rows.
func (r *Reader) Read() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DataLoad("dataset file not found: " + r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.DataLoad("unsupported file type: " + r.fileType)
	}
}

func (r *Reader) readCSV() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DataLoadWrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataLoadWrap(err, "failed to read CSV file")
	}

	if len(rows) < 2 {
		return nil, errors.DataLoad("dataset must have a header row and at least one data row")
	}

	// Strip a UTF-8 byte-order mark if the export carries one.
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")

	return r.assemble(rows)
}

func (r *Reader) readExcel() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DataLoadWrap(err, "failed to open Excel file")
	}
	defer f.Close()

	// Always use the first sheet
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.DataLoad("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.DataLoadWrap(err, "failed to read sheet "+sheets[0])
	}

	if len(rows) < 2 {
		return nil, errors.DataLoad("dataset must have a header row and at least one data row")
	}

	return r.assemble(rows)
}

// assemble converts raw string rows into the Table format
func (r *Reader) assemble(rows [][]string) (*Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	if len(dataRows) == 0 {
		return nil, errors.DataLoad("dataset has no data rows")
	}

	return &Table{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// HasColumn reports whether the table carries the named header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
