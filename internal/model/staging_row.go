package model

import (
	"github.com/google/uuid"
)

// StagingRow is the normalized, DB-ready representation of a single patient
// record. Money is stored as int64 cents. Gender and Outcome hold canonical
// spellings ("Male"/"Female", "Recovered"/"Stable").
type StagingRow struct {
	LoadBatchID     uuid.UUID
	LoadFileID      int64
	SourceRowNumber int64

	PatientID        int64
	Age              int32
	Gender           string
	Condition        string
	Procedure        string
	CostCents        int64
	LengthOfStayDays int32
	Readmitted       bool
	Outcome          string
	Satisfaction     int32
}

// StagingColumns returns the ordered column names for COPY into
// ingest.stage_patient_rows.
func StagingColumns() []string {
	return []string{
		"load_batch_id",
		"load_file_id",
		"source_row_number",
		"patient_id",
		"age",
		"gender",
		"condition",
		"procedure",
		"cost_cents",
		"length_of_stay_days",
		"readmitted",
		"outcome",
		"satisfaction",
	}
}

// CopyValues returns the row values in the same order as StagingColumns(),
// suitable for pgx CopyFromSource.
func (r *StagingRow) CopyValues() []any {
	return []any{
		r.LoadBatchID,
		r.LoadFileID,
		r.SourceRowNumber,
		r.PatientID,
		r.Age,
		r.Gender,
		r.Condition,
		r.Procedure,
		r.CostCents,
		r.LengthOfStayDays,
		r.Readmitted,
		r.Outcome,
		r.Satisfaction,
	}
}
