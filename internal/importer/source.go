package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRows loads an uploaded spreadsheet and returns one map per data row,
// keyed by canonical column name. Row order follows file order. Fully blank
// lines are dropped.
func ReadRows(path string, mapper *ColumnMapper) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xls":
		return readExcel(f, mapper)
	case ".csv":
		return readCSV(f, mapper)
	}
	return nil, fmt.Errorf("unsupported file type %q", ext)
}

func readExcel(r io.Reader, mapper *ColumnMapper) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return mapRecords(rows, mapper)
}

func readCSV(r io.Reader, mapper *ColumnMapper) ([]map[string]string, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return mapRecords(records, mapper)
}

func mapRecords(records [][]string, mapper *ColumnMapper) ([]map[string]string, error) {
	if len(records) < 2 {
		return nil, errors.New("file has no data rows")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = mapper.Canonical(h)
	}

	var out []map[string]string
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		blank := true
		for i, h := range headers {
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			row[h] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
