// mkfixture writes a synthetic patient record dataset for local runs and
// fixtures. Output is deterministic for a given seed.
// Usage: go run ./cmd/mkfixture --out testdata/patients.csv --rows 500 --seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/Supratim-02/hospitalstats/internal/model"
)

var conditions = map[string][]string{
	"Heart Disease": {"Bypass Surgery", "Angioplasty", "Medication Therapy"},
	"Diabetes":      {"Insulin Therapy", "Medication Therapy", "Dietary Program"},
	"Fracture":      {"Surgery", "Cast Immobilization", "Physical Therapy"},
	"Pneumonia":     {"Antibiotic Therapy", "Oxygen Therapy"},
	"Appendicitis":  {"Appendectomy"},
	"Hypertension":  {"Medication Therapy", "Lifestyle Program"},
}

func main() {
	out := flag.String("out", "testdata/patients.csv", "output file (.csv or .parquet)")
	rows := flag.Int("rows", 500, "number of records to generate")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	names := make([]string, 0, len(conditions))
	for c := range conditions {
		names = append(names, c)
	}
	// Map iteration order is random; sort for seed-stable output.
	sort.Strings(names)

	records := make([]model.PatientRow, *rows)
	for i := range records {
		condition := names[rng.Intn(len(names))]
		procs := conditions[condition]
		procedure := procs[rng.Intn(len(procs))]

		gender := "Male"
		if rng.Intn(2) == 1 {
			gender = "Female"
		}
		outcome := "Stable"
		if rng.Float64() < 0.7 {
			outcome = "Recovered"
		}

		records[i] = model.PatientRow{
			PatientID:    int64(i + 1),
			Age:          int32(1 + rng.Intn(95)),
			Gender:       gender,
			Condition:    condition,
			Procedure:    procedure,
			Cost:         float64(500+rng.Intn(49500)) + float64(rng.Intn(100))/100,
			LengthOfStay: int32(1 + rng.Intn(15)),
			Readmission:  rng.Float64() < 0.15,
			Outcome:      outcome,
			Satisfaction: int32(1 + rng.Intn(5)),
		}
	}

	var err error
	switch strings.ToLower(filepath.Ext(*out)) {
	case ".csv":
		err = writeCSV(*out, records)
	case ".parquet":
		err = writeParquet(*out, records)
	default:
		err = fmt.Errorf("unsupported extension %q", filepath.Ext(*out))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkfixture: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d records to %s\n", len(records), *out)
}

func writeCSV(path string, records []model.PatientRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns()); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			strconv.FormatInt(r.PatientID, 10),
			strconv.Itoa(int(r.Age)),
			r.Gender,
			r.Condition,
			r.Procedure,
			strconv.FormatFloat(r.Cost, 'f', 2, 64),
			strconv.Itoa(int(r.LengthOfStay)),
			strconv.FormatBool(r.Readmission),
			r.Outcome,
			strconv.Itoa(int(r.Satisfaction)),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeParquet(path string, records []model.PatientRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := goparquet.NewGenericWriter[model.PatientRow](f)
	if _, err := w.Write(records); err != nil {
		return err
	}
	return w.Close()
}
