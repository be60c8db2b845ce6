// Package report runs the analytic report queries over care.patients and
// renders their results.
package report

import (
	embedsql "github.com/Supratim-02/hospitalstats/internal/sql"
)

// Report describes one analytic report: its embedded SQL, its output
// columns, and a prototype for scanning one result row.
type Report struct {
	Name    string
	Title   string
	SQL     string
	Columns []string

	// newRow returns fresh scan destinations for one result row, in column
	// order. A **float64 destination marks a nullable column.
	newRow func() []any
}

// All lists every report in canonical order.
var All = []Report{
	{
		Name:    "demographics",
		Title:   "Patient Demographics by Gender",
		SQL:     embedsql.Demographics,
		Columns: []string{"gender", "patient_count", "avg_age", "min_age", "max_age"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(float64), new(int64), new(int64)}
		},
	},
	{
		Name:    "condition-prevalence",
		Title:   "Condition Prevalence",
		SQL:     embedsql.ConditionPrevalence,
		Columns: []string{"condition", "patient_count", "pct_of_total", "avg_cost", "avg_stay_days"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:    "procedure-cost",
		Title:   "Procedure Cost Breakdown",
		SQL:     embedsql.ProcedureCost,
		Columns: []string{"procedure", "patient_count", "avg_cost", "min_cost", "max_cost", "total_cost"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(float64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:    "readmission-by-condition-outcome",
		Title:   "Readmission by Condition and Outcome",
		SQL:     embedsql.ReadmissionByConditionOutcome,
		Columns: []string{"condition", "outcome", "patient_count", "readmission_count", "readmission_rate"},
		newRow: func() []any {
			return []any{new(string), new(string), new(int64), new(int64), new(float64)}
		},
	},
	{
		Name:    "stay-vs-cost",
		Title:   "Length of Stay vs Cost",
		SQL:     embedsql.StayVsCost,
		Columns: []string{"stay_category", "patient_count", "avg_stay_days", "avg_cost", "avg_satisfaction"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:    "satisfaction-by-outcome",
		Title:   "Satisfaction by Outcome and Readmission",
		SQL:     embedsql.SatisfactionByOutcome,
		Columns: []string{"outcome", "readmitted", "patient_count", "avg_satisfaction", "avg_cost"},
		newRow: func() []any {
			return []any{new(string), new(bool), new(int64), new(float64), new(float64)}
		},
	},
	{
		Name:    "age-group-analysis",
		Title:   "Age Group Analysis",
		SQL:     embedsql.AgeGroupAnalysis,
		Columns: []string{"age_group", "patient_count", "avg_cost", "avg_stay_days", "avg_satisfaction", "readmission_rate"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(float64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:  "high-cost-patients",
		Title: "High Cost Patients (Above Average)",
		SQL:   embedsql.HighCostPatients,
		Columns: []string{
			"patient_id", "age", "gender", "condition", "procedure",
			"cost", "length_of_stay_days", "readmitted", "outcome", "satisfaction",
		},
		newRow: func() []any {
			return []any{
				new(int64), new(int64), new(string), new(string), new(string),
				new(float64), new(int64), new(bool), new(string), new(int64),
			}
		},
	},
	{
		Name:    "procedure-effectiveness",
		Title:   "Procedure Effectiveness",
		SQL:     embedsql.ProcedureEffectiveness,
		Columns: []string{"procedure", "patient_count", "recovered_count", "recovery_rate", "avg_cost", "avg_satisfaction"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(int64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:    "monthly-trend",
		Title:   "Simulated Monthly Trend",
		SQL:     embedsql.MonthlyTrend,
		Columns: []string{"month_number", "patient_count", "avg_cost", "avg_stay_days", "readmission_rate"},
		newRow: func() []any {
			return []any{new(int64), new(int64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:    "gender-condition",
		Title:   "Gender by Condition",
		SQL:     embedsql.GenderCondition,
		Columns: []string{"gender", "condition", "patient_count", "avg_age", "avg_cost", "avg_stay_days", "recovery_rate"},
		newRow: func() []any {
			return []any{new(string), new(string), new(int64), new(float64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:  "cost-effectiveness",
		Title: "Cost Effectiveness by Condition and Procedure",
		SQL:   embedsql.CostEffectiveness,
		Columns: []string{
			"condition", "procedure", "patient_count", "avg_cost",
			"recovery_rate", "avg_satisfaction", "cost_effectiveness_score",
		},
		newRow: func() []any {
			return []any{
				new(string), new(string), new(int64), new(float64),
				new(float64), new(float64), new(*float64),
			}
		},
	},
	{
		Name:  "readmission-risk",
		Title: "Readmission Risk by Condition",
		SQL:   embedsql.ReadmissionRisk,
		Columns: []string{
			"condition", "patient_count", "avg_age", "avg_stay_days", "avg_cost",
			"avg_satisfaction", "readmission_count", "readmission_rate",
		},
		newRow: func() []any {
			return []any{
				new(string), new(int64), new(float64), new(float64), new(float64),
				new(float64), new(int64), new(float64),
			}
		},
	},
	{
		Name:    "satisfaction-drivers",
		Title:   "Satisfaction Drivers",
		SQL:     embedsql.SatisfactionDrivers,
		Columns: []string{"satisfaction_level", "patient_count", "avg_cost", "avg_stay_days", "recovery_rate", "readmission_rate"},
		newRow: func() []any {
			return []any{new(string), new(int64), new(float64), new(float64), new(float64), new(float64)}
		},
	},
	{
		Name:  "executive-dashboard",
		Title: "Executive Dashboard",
		SQL:   embedsql.ExecutiveDashboard,
		Columns: []string{
			"cohort", "patient_count", "avg_cost", "avg_stay_days",
			"avg_satisfaction", "recovery_rate", "readmission_rate",
		},
		newRow: func() []any {
			return []any{
				new(string), new(int64), new(float64), new(float64),
				new(float64), new(float64), new(float64),
			}
		},
	},
}

// ByName returns the report with the given name, or ok=false.
func ByName(name string) (Report, bool) {
	for _, r := range All {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

// Names returns every report name in canonical order.
func Names() []string {
	names := make([]string, len(All))
	for i, r := range All {
		names[i] = r.Name
	}
	return names
}
