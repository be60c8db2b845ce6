package normalize

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Supratim-02/hospitalstats/internal/model"
)

func validRow() model.PatientRow {
	return model.PatientRow{
		PatientID:    42,
		Age:          63,
		Gender:       "female",
		Condition:    "Heart Disease",
		Procedure:    "Bypass Surgery",
		Cost:         12345.67,
		LengthOfStay: 9,
		Readmission:  true,
		Outcome:      "RECOVERED",
		Satisfaction: 4,
	}
}

func TestToStagingRow_Valid(t *testing.T) {
	row := validRow()
	batch := uuid.New()

	s, err := ToStagingRow(&row, batch, 7, 3)
	if err != nil {
		t.Fatalf("ToStagingRow: %v", err)
	}
	if s.LoadBatchID != batch || s.LoadFileID != 7 || s.SourceRowNumber != 3 {
		t.Errorf("load metadata mismatch: %+v", s)
	}
	if s.Gender != "Female" {
		t.Errorf("gender: got %q, want Female", s.Gender)
	}
	if s.Outcome != "Recovered" {
		t.Errorf("outcome: got %q, want Recovered", s.Outcome)
	}
	if s.CostCents != 1234567 {
		t.Errorf("cost cents: got %d, want 1234567", s.CostCents)
	}
}

func TestToStagingRow_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.PatientRow)
	}{
		{"zero_patient_id", func(r *model.PatientRow) { r.PatientID = 0 }},
		{"negative_age", func(r *model.PatientRow) { r.Age = -1 }},
		{"negative_cost", func(r *model.PatientRow) { r.Cost = -0.01 }},
		{"negative_stay", func(r *model.PatientRow) { r.LengthOfStay = -3 }},
		{"satisfaction_low", func(r *model.PatientRow) { r.Satisfaction = 0 }},
		{"satisfaction_high", func(r *model.PatientRow) { r.Satisfaction = 6 }},
		{"unknown_gender", func(r *model.PatientRow) { r.Gender = "other" }},
		{"unknown_outcome", func(r *model.PatientRow) { r.Outcome = "deceased" }},
		{"empty_condition", func(r *model.PatientRow) { r.Condition = "  " }},
		{"empty_procedure", func(r *model.PatientRow) { r.Procedure = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := validRow()
			tc.mutate(&row)
			if _, err := ToStagingRow(&row, uuid.Nil, 1, 1); err == nil {
				t.Error("expected rejection, got nil error")
			}
		})
	}
}

func TestCanonicalGender(t *testing.T) {
	for in, want := range map[string]string{
		"male": "Male", "M": "Male", " FEMALE ": "Female", "f": "Female",
	} {
		got, err := CanonicalGender(in)
		if err != nil {
			t.Errorf("CanonicalGender(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("CanonicalGender(%q): got %q, want %q", in, got, want)
		}
	}
	if _, err := CanonicalGender("x"); err == nil {
		t.Error("expected error for unknown gender")
	}
}

func TestDollarsToCents(t *testing.T) {
	cases := map[float64]int64{
		0:       0,
		1:       100,
		19.99:   1999,
		0.005:   1, // rounds, does not truncate
		1234.56: 123456,
	}
	for in, want := range cases {
		if got := DollarsToCents(in); got != want {
			t.Errorf("DollarsToCents(%v): got %d, want %d", in, got, want)
		}
	}
}
