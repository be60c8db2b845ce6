package normalize

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Supratim-02/hospitalstats/internal/model"
)

// ToStagingRow validates a source PatientRow and converts it into a
// normalized StagingRow. A non-nil error means the row is rejected; the load
// continues with the next row.
func ToStagingRow(row *model.PatientRow, batchID uuid.UUID, loadFileID int64, rowNum int64) (*model.StagingRow, error) {
	if row.PatientID <= 0 {
		return nil, fmt.Errorf("patient_id must be positive, got %d", row.PatientID)
	}
	if row.Age < 0 {
		return nil, fmt.Errorf("age must be non-negative, got %d", row.Age)
	}
	if row.Cost < 0 {
		return nil, fmt.Errorf("cost must be non-negative, got %v", row.Cost)
	}
	if row.LengthOfStay < 0 {
		return nil, fmt.Errorf("length_of_stay must be non-negative, got %d", row.LengthOfStay)
	}
	if row.Satisfaction < 1 || row.Satisfaction > 5 {
		return nil, fmt.Errorf("satisfaction must be in 1..5, got %d", row.Satisfaction)
	}

	gender, err := CanonicalGender(row.Gender)
	if err != nil {
		return nil, err
	}
	outcome, err := CanonicalOutcome(row.Outcome)
	if err != nil {
		return nil, err
	}

	condition := strings.TrimSpace(row.Condition)
	if condition == "" {
		return nil, fmt.Errorf("condition is empty")
	}
	procedure := strings.TrimSpace(row.Procedure)
	if procedure == "" {
		return nil, fmt.Errorf("procedure is empty")
	}

	return &model.StagingRow{
		LoadBatchID:     batchID,
		LoadFileID:      loadFileID,
		SourceRowNumber: rowNum,

		PatientID:        row.PatientID,
		Age:              row.Age,
		Gender:           gender,
		Condition:        condition,
		Procedure:        procedure,
		CostCents:        DollarsToCents(row.Cost),
		LengthOfStayDays: row.LengthOfStay,
		Readmitted:       row.Readmission,
		Outcome:          outcome,
		Satisfaction:     row.Satisfaction,
	}, nil
}

// CanonicalGender maps case-insensitive gender spellings (including the
// single letters M and F) to the canonical "Male"/"Female".
func CanonicalGender(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return "Male", nil
	case "female", "f":
		return "Female", nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// CanonicalOutcome maps case-insensitive outcome spellings to the canonical
// "Recovered"/"Stable".
func CanonicalOutcome(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recovered":
		return "Recovered", nil
	case "stable":
		return "Stable", nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}
