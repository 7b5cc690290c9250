// Package excel reads tabular uploads (xlsx or csv) into named samples.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"statcanvas/domain/core"
)

// DataReader parses an uploaded file into columns keyed by header name.
type DataReader struct {
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader whose format is inferred from the file
// extension. Anything that is not .csv is treated as xlsx.
func NewDataReader(filename string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{fileType: fileType}
}

// ReadSamples reads a header row plus data rows and returns one sample per
// column, in header order. Empty cells are skipped so columns may end up
// with different lengths.
func (r *DataReader) ReadSamples(src io.Reader) (*core.Samples, error) {
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = readCSVRows(src)
	default:
		rows, err = readExcelRows(src)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}
	return samplesFromRows(rows)
}

func readExcelRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	return rows, nil
}

func samplesFromRows(rows [][]string) (*core.Samples, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	columns := make([][]string, len(headers))
	for _, row := range rows[1:] {
		for j := range headers {
			if j >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				continue
			}
			columns[j] = append(columns[j], cell)
		}
	}

	samples := core.NewSamples()
	for i, name := range headers {
		if name == "" || len(columns[i]) == 0 {
			continue
		}
		samples.Set(name, core.SampleFromStrings(columns[i]))
	}
	if samples.Len() == 0 {
		return nil, fmt.Errorf("no usable columns found")
	}
	return samples, nil
}
