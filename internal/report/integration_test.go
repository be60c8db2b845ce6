package report_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Supratim-02/hospitalstats/internal/db"
	"github.com/Supratim-02/hospitalstats/internal/logging"
	"github.com/Supratim-02/hospitalstats/internal/report"
)

const (
	testPort     = 15433
	testDB       = "reporttest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	// Own runtime path so this package can run alongside the load package's
	// embedded instance.
	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			RuntimePath(filepath.Join(os.TempDir(), "hospitalstats-report-pg")).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a connection pool against a clean, migrated schema.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	for _, schema := range []string{"care", "ingest"} {
		_, err := pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
		if err != nil {
			t.Fatalf("drop schema %s: %v", schema, err)
		}
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

var patientColumns = []string{
	"patient_id", "age", "gender", "condition", "procedure",
	"cost_cents", "length_of_stay_days", "readmitted", "outcome", "satisfaction",
}

// patient builds one care.patients row in COPY column order; cost is dollars.
func patient(id, age int, gender, condition, procedure string, cost float64, stay int, readmitted bool, outcome string, satisfaction int) []any {
	return []any{
		int64(id), int32(age), gender, condition, procedure,
		int64(math.Round(cost * 100)), int32(stay), readmitted, outcome, int32(satisfaction),
	}
}

func insertPatients(t *testing.T, pool *pgxpool.Pool, rows [][]any) {
	t.Helper()
	_, err := pool.CopyFrom(context.Background(),
		pgx.Identifier{"care", "patients"},
		patientColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		t.Fatalf("insert patients: %v", err)
	}
}

func run(t *testing.T, pool *pgxpool.Pool, name string) *report.Result {
	t.Helper()
	res, err := report.Run(context.Background(), pool, name)
	if err != nil {
		t.Fatalf("run report %s: %v", name, err)
	}
	return res
}

func asFloat(t *testing.T, v any) float64 {
	t.Helper()
	f, ok := v.(float64)
	if !ok {
		t.Fatalf("expected float64 cell, got %T (%v)", v, v)
	}
	return f
}

func asInt(t *testing.T, v any) int64 {
	t.Helper()
	i, ok := v.(int64)
	if !ok {
		t.Fatalf("expected int64 cell, got %T (%v)", v, v)
	}
	return i
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// mixedFixture covers both genders, several conditions and procedures, every
// age bucket, every stay bucket, and every satisfaction level.
func mixedFixture() [][]any {
	return [][]any{
		patient(1, 25, "Male", "Diabetes", "Insulin Therapy", 1200, 2, false, "Recovered", 4),
		patient(2, 29, "Female", "Diabetes", "Insulin Therapy", 1500, 3, false, "Recovered", 5),
		patient(3, 30, "Male", "Diabetes", "Dietary Program", 800, 1, false, "Stable", 3),
		patient(4, 45, "Female", "Heart Disease", "Bypass Surgery", 25000, 9, true, "Stable", 2),
		patient(5, 49, "Male", "Heart Disease", "Angioplasty", 18000, 6, false, "Recovered", 4),
		patient(6, 50, "Female", "Heart Disease", "Bypass Surgery", 27000, 12, true, "Recovered", 3),
		patient(7, 62, "Male", "Fracture", "Surgery", 9000, 5, false, "Recovered", 5),
		patient(8, 69, "Female", "Fracture", "Cast Immobilization", 2000, 1, false, "Recovered", 4),
		patient(9, 70, "Male", "Pneumonia", "Antibiotic Therapy", 4000, 7, true, "Stable", 1),
		patient(10, 83, "Female", "Pneumonia", "Antibiotic Therapy", 5200, 8, true, "Recovered", 2),
		patient(11, 35, "Male", "Fracture", "Surgery", 9500, 4, false, "Recovered", 4),
		patient(12, 55, "Female", "Diabetes", "Insulin Therapy", 1700, 3, true, "Stable", 3),
		patient(13, 41, "Male", "Pneumonia", "Oxygen Therapy", 6100, 10, false, "Recovered", 5),
		patient(14, 77, "Female", "Heart Disease", "Medication Therapy", 3000, 2, false, "Stable", 3),
		patient(15, 22, "Male", "Fracture", "Cast Immobilization", 1800, 1, false, "Recovered", 5),
		patient(16, 68, "Female", "Diabetes", "Dietary Program", 950, 2, false, "Recovered", 4),
		patient(17, 59, "Male", "Heart Disease", "Angioplasty", 16500, 5, true, "Stable", 2),
		patient(18, 33, "Female", "Pneumonia", "Antibiotic Therapy", 4400, 6, false, "Recovered", 4),
		patient(19, 90, "Male", "Heart Disease", "Medication Therapy", 3500, 3, true, "Stable", 1),
		patient(20, 27, "Female", "Fracture", "Surgery", 8800, 4, false, "Recovered", 5),
	}
}

// Reports with no group-size filter must conserve the total record count
// across their partitions.
func TestPartitionCountsConserveTotal(t *testing.T) {
	pool := setupDB(t)
	rows := mixedFixture()
	insertPatients(t, pool, rows)
	total := int64(len(rows))

	countCol := map[string]int{
		"demographics":            1,
		"condition-prevalence":    1,
		"procedure-cost":          1,
		"stay-vs-cost":            1,
		"satisfaction-by-outcome": 2,
		"age-group-analysis":      1,
		"monthly-trend":           1,
		"satisfaction-drivers":    1,
	}
	for name, col := range countCol {
		t.Run(name, func(t *testing.T) {
			res := run(t, pool, name)
			var sum int64
			for _, row := range res.Rows {
				sum += asInt(t, row[col])
			}
			if sum != total {
				t.Errorf("partition counts sum to %d, want %d", sum, total)
			}
		})
	}
}

// Every rate/percentage column stays within [0, 100].
func TestRatesWithinBounds(t *testing.T) {
	pool := setupDB(t)
	insertPatients(t, pool, mixedFixture())

	rateCols := map[string][]string{
		"condition-prevalence":             {"pct_of_total"},
		"readmission-by-condition-outcome": {"readmission_rate"},
		"age-group-analysis":               {"readmission_rate"},
		"procedure-effectiveness":          {"recovery_rate"},
		"monthly-trend":                    {"readmission_rate"},
		"gender-condition":                 {"recovery_rate"},
		"cost-effectiveness":               {"recovery_rate"},
		"readmission-risk":                 {"readmission_rate"},
		"satisfaction-drivers":             {"recovery_rate", "readmission_rate"},
		"executive-dashboard":              {"recovery_rate", "readmission_rate"},
	}
	for name, cols := range rateCols {
		t.Run(name, func(t *testing.T) {
			res := run(t, pool, name)
			for _, col := range cols {
				idx := columnIndex(t, res, col)
				for _, row := range res.Rows {
					rate := asFloat(t, row[idx])
					if rate < 0 || rate > 100 {
						t.Errorf("%s out of bounds: %v", col, rate)
					}
				}
			}
		})
	}
}

func columnIndex(t *testing.T, res *report.Result, name string) int {
	t.Helper()
	for i, c := range res.Columns {
		if c == name {
			return i
		}
	}
	t.Fatalf("report %s has no column %q (have %v)", res.Name, name, res.Columns)
	return -1
}

func TestAgeGroupBuckets(t *testing.T) {
	pool := setupDB(t)

	t.Run("worked_example", func(t *testing.T) {
		insertPatients(t, pool, [][]any{
			patient(1, 25, "Male", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4),
			patient(2, 45, "Female", "Diabetes", "Insulin Therapy", 200, 3, false, "Recovered", 4),
			patient(3, 75, "Male", "Diabetes", "Insulin Therapy", 300, 4, false, "Recovered", 4),
		})

		res := run(t, pool, "age-group-analysis")
		if len(res.Rows) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(res.Rows))
		}
		want := []struct {
			group string
			cost  float64
		}{
			{"Young (Below 30)", 100.00},
			{"Middle-Aged (30-49)", 200.00},
			{"Elderly (70+)", 300.00},
		}
		for i, w := range want {
			if res.Rows[i][0] != w.group {
				t.Errorf("row %d group: got %v, want %q", i, res.Rows[i][0], w.group)
			}
			if got := asFloat(t, res.Rows[i][2]); !approx(got, w.cost) {
				t.Errorf("row %d avg_cost: got %v, want %v", i, got, w.cost)
			}
		}
	})

	t.Run("boundaries_partition_without_overlap", func(t *testing.T) {
		pool := setupDB(t)
		ages := []int{29, 30, 49, 50, 69, 70}
		rows := make([][]any, len(ages))
		for i, age := range ages {
			rows[i] = patient(i+1, age, "Male", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4)
		}
		insertPatients(t, pool, rows)

		res := run(t, pool, "age-group-analysis")
		wantCounts := map[string]int64{
			"Young (Below 30)":    1, // 29
			"Middle-Aged (30-49)": 2, // 30, 49
			"Senior (50-69)":      2, // 50, 69
			"Elderly (70+)":       1, // 70
		}
		var sum int64
		for _, row := range res.Rows {
			group := row[0].(string)
			count := asInt(t, row[1])
			sum += count
			if wantCounts[group] != count {
				t.Errorf("group %q: got %d, want %d", group, count, wantCounts[group])
			}
		}
		if sum != int64(len(ages)) {
			t.Errorf("counts sum to %d, want %d", sum, len(ages))
		}
	})
}

func TestHighCostPatients(t *testing.T) {
	pool := setupDB(t)

	// 60 cheap and 60 expensive records: more qualifying rows than the limit.
	rows := make([][]any, 0, 120)
	for i := 1; i <= 60; i++ {
		rows = append(rows, patient(i, 40, "Male", "Diabetes", "Insulin Therapy", 10, 2, false, "Recovered", 4))
	}
	for i := 61; i <= 120; i++ {
		rows = append(rows, patient(i, 40, "Female", "Heart Disease", "Bypass Surgery", float64(1000+i), 5, false, "Recovered", 4))
	}
	insertPatients(t, pool, rows)

	var overallAvg float64
	err := pool.QueryRow(context.Background(),
		"SELECT avg(cost_cents) / 100.0 FROM care.patients").Scan(&overallAvg)
	if err != nil {
		t.Fatalf("query overall avg: %v", err)
	}

	res := run(t, pool, "high-cost-patients")
	if len(res.Rows) != 50 {
		t.Fatalf("expected limit of 50 rows, got %d", len(res.Rows))
	}

	costIdx := columnIndex(t, res, "cost")
	prev := math.Inf(1)
	for _, row := range res.Rows {
		cost := asFloat(t, row[costIdx])
		if cost <= overallAvg {
			t.Errorf("cost %v not above overall average %v", cost, overallAvg)
		}
		if cost > prev {
			t.Errorf("rows not sorted by cost desc: %v after %v", cost, prev)
		}
		prev = cost
	}
}

func TestProcedureEffectiveness_ZeroRecoveries(t *testing.T) {
	pool := setupDB(t)

	// 6 records (count > 5) with no Recovered outcomes at all.
	rows := make([][]any, 6)
	for i := range rows {
		rows[i] = patient(i+1, 50, "Male", "Pneumonia", "Oxygen Therapy", 4000, 6, false, "Stable", 3)
	}
	insertPatients(t, pool, rows)

	res := run(t, pool, "procedure-effectiveness")
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	rateIdx := columnIndex(t, res, "recovery_rate")
	if rate := asFloat(t, res.Rows[0][rateIdx]); !approx(rate, 0) {
		t.Errorf("recovery_rate: got %v, want 0.00", rate)
	}
}

func TestCostEffectivenessScore(t *testing.T) {
	pool := setupDB(t)

	// 4 records (count > 3): avg_cost=500, avg_satisfaction=4, recovery=100%
	// → score = 500 / (4 × 100) = 1.25.
	rows := make([][]any, 4)
	for i := range rows {
		rows[i] = patient(i+1, 40, "Male", "Diabetes", "Insulin Therapy", 500, 3, false, "Recovered", 4)
	}
	// A second group whose denominator is zero: all Stable, so recovery_rate=0.
	for i := 0; i < 4; i++ {
		rows = append(rows, patient(100+i, 40, "Female", "Fracture", "Surgery", 900, 3, false, "Stable", 4))
	}
	insertPatients(t, pool, rows)

	res := run(t, pool, "cost-effectiveness")
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Rows))
	}
	scoreIdx := columnIndex(t, res, "cost_effectiveness_score")

	// Scored group sorts first; NULL scores sort last.
	first := res.Rows[0]
	if first[0] != "Diabetes" {
		t.Errorf("expected scored group first, got %v", first[0])
	}
	if score := asFloat(t, first[scoreIdx]); !approx(score, 1.25) {
		t.Errorf("score: got %v, want 1.25", score)
	}

	second := res.Rows[1]
	if second[scoreIdx] != nil {
		t.Errorf("zero denominator should yield NULL sentinel, got %v", second[scoreIdx])
	}
}

func TestMonthlyTrend_SimulatedMonths(t *testing.T) {
	pool := setupDB(t)

	// Ids 12 and 24 land in month 1; ids 1 and 13 land in month 2.
	insertPatients(t, pool, [][]any{
		patient(12, 40, "Male", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4),
		patient(24, 40, "Female", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4),
		patient(1, 40, "Male", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4),
		patient(13, 40, "Female", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4),
	})

	res := run(t, pool, "monthly-trend")
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 months, got %d", len(res.Rows))
	}
	if m := asInt(t, res.Rows[0][0]); m != 1 {
		t.Errorf("first month: got %d, want 1", m)
	}
	if c := asInt(t, res.Rows[0][1]); c != 2 {
		t.Errorf("month 1 count: got %d, want 2", c)
	}
	if m := asInt(t, res.Rows[1][0]); m != 2 {
		t.Errorf("second month: got %d, want 2", m)
	}
}

func TestReadmissionByConditionOutcome_GroupFilter(t *testing.T) {
	pool := setupDB(t)

	// One group of 11 (4 readmitted) passes count > 10; one group of 5 does not.
	rows := make([][]any, 0, 16)
	for i := 1; i <= 11; i++ {
		rows = append(rows, patient(i, 50, "Male", "Heart Disease", "Angioplasty", 15000, 5, i <= 4, "Stable", 3))
	}
	for i := 12; i <= 16; i++ {
		rows = append(rows, patient(i, 50, "Female", "Fracture", "Surgery", 9000, 4, true, "Stable", 3))
	}
	insertPatients(t, pool, rows)

	res := run(t, pool, "readmission-by-condition-outcome")
	if len(res.Rows) != 1 {
		t.Fatalf("expected only the >10 group, got %d rows", len(res.Rows))
	}
	row := res.Rows[0]
	if row[0] != "Heart Disease" {
		t.Errorf("condition: got %v", row[0])
	}
	if c := asInt(t, row[3]); c != 4 {
		t.Errorf("readmission_count: got %d, want 4", c)
	}
	// 4 * 100 / 11 = 36.3636… → 36.36
	if rate := asFloat(t, row[4]); !approx(rate, 36.36) {
		t.Errorf("readmission_rate: got %v, want 36.36", rate)
	}
}

func TestConditionPrevalence_PctSumsToHundred(t *testing.T) {
	pool := setupDB(t)
	insertPatients(t, pool, mixedFixture())

	res := run(t, pool, "condition-prevalence")
	var sum float64
	for _, row := range res.Rows {
		sum += asFloat(t, row[2])
	}
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("pct_of_total sums to %v, want ~100", sum)
	}
}

func TestExecutiveDashboard(t *testing.T) {
	pool := setupDB(t)
	insertPatients(t, pool, [][]any{
		patient(1, 30, "Male", "Diabetes", "Insulin Therapy", 100, 2, false, "Recovered", 4),
		patient(2, 40, "Female", "Diabetes", "Insulin Therapy", 200, 3, true, "Stable", 3),
		patient(3, 50, "Male", "Heart Disease", "Bypass Surgery", 900, 8, false, "Recovered", 5),
	})

	res := run(t, pool, "executive-dashboard")
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(res.Rows))
	}
	if res.Rows[0][0] != "All Patients" || res.Rows[1][0] != "High Cost (Above Average)" {
		t.Errorf("cohort labels mismatch: %v, %v", res.Rows[0][0], res.Rows[1][0])
	}
	if c := asInt(t, res.Rows[0][1]); c != 3 {
		t.Errorf("overall count: got %d, want 3", c)
	}
	// avg cost = 400; only the 900 record is above it.
	if c := asInt(t, res.Rows[1][1]); c != 1 {
		t.Errorf("high-cost count: got %d, want 1", c)
	}
}

func TestEmptyTable_AllReportsEmpty(t *testing.T) {
	pool := setupDB(t)

	for _, name := range report.Names() {
		t.Run(name, func(t *testing.T) {
			res := run(t, pool, name)
			if len(res.Rows) != 0 {
				t.Errorf("expected empty result, got %d rows", len(res.Rows))
			}
		})
	}
}

func TestReportsIdempotent(t *testing.T) {
	pool := setupDB(t)
	insertPatients(t, pool, mixedFixture())

	for _, name := range report.Names() {
		t.Run(name, func(t *testing.T) {
			first := run(t, pool, name)
			second := run(t, pool, name)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("report %s is not idempotent", name)
			}
		})
	}
}

func TestRunAll_DefaultsToEveryReport(t *testing.T) {
	pool := setupDB(t)
	insertPatients(t, pool, mixedFixture())

	results, err := report.RunAll(context.Background(), pool, nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != len(report.All) {
		t.Errorf("expected %d results, got %d", len(report.All), len(results))
	}
}

func TestRun_UnknownReport(t *testing.T) {
	pool := setupDB(t)
	if _, err := report.Run(context.Background(), pool, "bogus"); err == nil {
		t.Fatal("expected error for unknown report")
	}
}
