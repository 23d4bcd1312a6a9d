package audience

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingColumns is returned when a tabular upload has no usable
// pincode/viewer_count header. This is a run-level failure of the
// container, distinct from row-level rejects.
var ErrMissingColumns = errors.New("upload is missing pincode or viewer_count columns")

// headerIndexes locates the two required columns in a header row.
// The pincode column accepts both "pincode" and "postal_code"; any
// other columns are ignored.
func headerIndexes(header []string) (pinIdx, countIdx int, err error) {
	pinIdx, countIdx = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "pincode", "postal_code":
			if pinIdx < 0 {
				pinIdx = i
			}
		case "viewer_count", "viewers":
			if countIdx < 0 {
				countIdx = i
			}
		}
	}
	if pinIdx < 0 || countIdx < 0 {
		return -1, -1, ErrMissingColumns
	}
	return pinIdx, countIdx, nil
}

func cellAt(row []string, idx int) *string {
	if idx >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[idx])
	if v == "" {
		return nil
	}
	return &v
}

// ParseCSV reads a tabular upload with a header row
func ParseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged; validation handles it

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingColumns
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	pinIdx, countIdx, err := headerIndexes(header)
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}
		rows = append(rows, RawRow{
			Row:         line,
			Pincode:     cellAt(record, pinIdx),
			ViewerCount: cellAt(record, countIdx),
		})
		line++
	}

	return rows, nil
}

// ParseXLSX reads a tabular upload from the first sheet of a workbook
func ParseXLSX(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingColumns
	}

	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(sheetRows) == 0 {
		return nil, ErrMissingColumns
	}

	pinIdx, countIdx, err := headerIndexes(sheetRows[0])
	if err != nil {
		return nil, err
	}

	rows := make([]RawRow, 0, len(sheetRows)-1)
	for i, record := range sheetRows[1:] {
		rows = append(rows, RawRow{
			Row:         i + 1,
			Pincode:     cellAt(record, pinIdx),
			ViewerCount: cellAt(record, countIdx),
		})
	}

	return rows, nil
}

// ParseJSON reads a record-oriented upload: an array of objects with
// pincode/postal_code and viewer_count fields. Values may be strings
// or numbers; extra fields are ignored.
func ParseJSON(data []byte) ([]RawRow, error) {
	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse record-oriented upload: %w", err)
	}

	rows := make([]RawRow, 0, len(objects))
	for i, obj := range objects {
		row := RawRow{Row: i + 1}
		for _, key := range []string{"pincode", "postal_code"} {
			if raw, ok := obj[key]; ok {
				row.Pincode = jsonScalar(raw)
				break
			}
		}
		if raw, ok := obj["viewer_count"]; ok {
			row.ViewerCount = jsonScalar(raw)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// jsonScalar renders a JSON string or number as its text form
func jsonScalar(raw json.RawMessage) *string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return &s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		text := strconv.FormatFloat(n, 'f', -1, 64)
		return &text
	}
	return nil
}
