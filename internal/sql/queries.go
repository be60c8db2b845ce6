package sql

import (
	"embed"
)

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Load pipeline queries.

//go:embed queries/register_load_file.sql
var RegisterLoadFile string

//go:embed queries/transform_stage_to_patients.sql
var TransformStageToPatients string

//go:embed queries/delete_staging_batch.sql
var DeleteStagingBatch string

// Analytic report queries, one file per report.

//go:embed reports/demographics.sql
var Demographics string

//go:embed reports/condition_prevalence.sql
var ConditionPrevalence string

//go:embed reports/procedure_cost.sql
var ProcedureCost string

//go:embed reports/readmission_by_condition_outcome.sql
var ReadmissionByConditionOutcome string

//go:embed reports/stay_vs_cost.sql
var StayVsCost string

//go:embed reports/satisfaction_by_outcome.sql
var SatisfactionByOutcome string

//go:embed reports/age_group_analysis.sql
var AgeGroupAnalysis string

//go:embed reports/high_cost_patients.sql
var HighCostPatients string

//go:embed reports/procedure_effectiveness.sql
var ProcedureEffectiveness string

//go:embed reports/monthly_trend.sql
var MonthlyTrend string

//go:embed reports/gender_condition.sql
var GenderCondition string

//go:embed reports/cost_effectiveness.sql
var CostEffectiveness string

//go:embed reports/readmission_risk.sql
var ReadmissionRisk string

//go:embed reports/satisfaction_drivers.sql
var SatisfactionDrivers string

//go:embed reports/executive_dashboard.sql
var ExecutiveDashboard string
