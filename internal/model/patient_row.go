package model

// PatientRow mirrors the source file schema for a single patient record.
// Cost is a float64 dollar amount matching the file representation; it gets
// converted to integer cents during normalization.
type PatientRow struct {
	PatientID    int64   `parquet:"patient_id"`
	Age          int32   `parquet:"age"`
	Gender       string  `parquet:"gender"`
	Condition    string  `parquet:"condition"`
	Procedure    string  `parquet:"procedure"`
	Cost         float64 `parquet:"cost"`
	LengthOfStay int32   `parquet:"length_of_stay"`
	Readmission  bool    `parquet:"readmission"`
	Outcome      string  `parquet:"outcome"`
	Satisfaction int32   `parquet:"satisfaction"`
}

// Columns lists the source columns in canonical file order. Both the CSV
// header and the Parquet schema are validated against this list.
func Columns() []string {
	return []string{
		"patient_id",
		"age",
		"gender",
		"condition",
		"procedure",
		"cost",
		"length_of_stay",
		"readmission",
		"outcome",
		"satisfaction",
	}
}
