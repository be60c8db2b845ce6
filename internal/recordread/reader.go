// Package recordread streams patient records from CSV or Parquet files.
package recordread

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Supratim-02/hospitalstats/internal/model"
)

// Reader streams PatientRow records from a source file.
type Reader interface {
	// Read reads up to len(rows) records into the provided slice. It returns
	// the number of rows read and io.EOF when the file is exhausted. A
	// *RowError return means one malformed row was skipped; the rows read
	// before it are valid and the caller should keep reading.
	Read(rows []model.PatientRow) (int, error)
	Close() error
}

// RowError reports a single malformed source row. The surrounding load
// rejects the row and continues.
type RowError struct {
	Row int64
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Open opens a patient record file, choosing the format by extension
// (.csv or .parquet).
func Open(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return OpenCSV(path)
	case ".parquet":
		return OpenParquet(path)
	}
	return nil, fmt.Errorf("unsupported file extension %q (want .csv or .parquet)", filepath.Ext(path))
}
