package recordread

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Supratim-02/hospitalstats/internal/model"
)

// CSVReader streams a patient record CSV file. The first row must be a
// header containing every column from model.Columns(); column order is
// not significant.
type CSVReader struct {
	file   *os.File
	csv    *csv.Reader
	rowNum int64          // current physical row, header included
	colIdx map[string]int // lowercase header name → column index
}

// OpenCSV opens a CSV file and validates its header.
func OpenCSV(path string) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	r := &CSVReader{
		file:   file,
		csv:    reader,
		colIdx: make(map[string]int),
	}

	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

func (r *CSVReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	r.rowNum++

	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		r.colIdx[h] = i
	}

	var missing []string
	for _, col := range model.Columns() {
		if _, ok := r.colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Read implements Reader. Malformed data rows come back as a *RowError after
// the rows parsed so far; the caller counts the reject and calls Read again.
func (r *CSVReader) Read(rows []model.PatientRow) (int, error) {
	n := 0
	for n < len(rows) {
		record, err := r.csv.Read()
		if err == io.EOF {
			return n, io.EOF
		}
		r.rowNum++
		if err != nil {
			return n, &RowError{Row: r.rowNum, Err: err}
		}

		row, err := r.parseRow(record)
		if err != nil {
			return n, &RowError{Row: r.rowNum, Err: err}
		}
		rows[n] = row
		n++
	}
	return n, nil
}

func (r *CSVReader) parseRow(record []string) (model.PatientRow, error) {
	var row model.PatientRow

	field := func(name string) (string, error) {
		idx := r.colIdx[name]
		if idx >= len(record) {
			return "", fmt.Errorf("missing field %s", name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	intField := func(name string) (int64, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q", name, s)
		}
		return v, nil
	}

	var err error
	if row.PatientID, err = intField("patient_id"); err != nil {
		return row, err
	}

	age, err := intField("age")
	if err != nil {
		return row, err
	}
	row.Age = int32(age)

	if row.Gender, err = field("gender"); err != nil {
		return row, err
	}
	if row.Condition, err = field("condition"); err != nil {
		return row, err
	}
	if row.Procedure, err = field("procedure"); err != nil {
		return row, err
	}

	costStr, err := field("cost")
	if err != nil {
		return row, err
	}
	if row.Cost, err = strconv.ParseFloat(costStr, 64); err != nil {
		return row, fmt.Errorf("invalid cost %q", costStr)
	}

	stay, err := intField("length_of_stay")
	if err != nil {
		return row, err
	}
	row.LengthOfStay = int32(stay)

	readmStr, err := field("readmission")
	if err != nil {
		return row, err
	}
	if row.Readmission, err = parseBool(readmStr); err != nil {
		return row, err
	}

	if row.Outcome, err = field("outcome"); err != nil {
		return row, err
	}

	sat, err := intField("satisfaction")
	if err != nil {
		return row, err
	}
	row.Satisfaction = int32(sat)

	return row, nil
}

// parseBool accepts the spellings commonly found in exported datasets.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// Close releases the underlying file.
func (r *CSVReader) Close() error {
	return r.file.Close()
}
