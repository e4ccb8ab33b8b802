package models

// Evaluation is one grading component of a class. Percentages across a class
// are not required to sum to 100.
type Evaluation struct {
	ID         int64  `json:"id" db:"id"`
	ClassID    int64  `json:"class_id" db:"class_id"`
	Method     string `json:"method" db:"method"`
	Percentage int    `json:"percentage" db:"percentage"`
}

// TotalPercentage sums the weights of evals.
func TotalPercentage(evals []Evaluation) int {
	total := 0
	for _, e := range evals {
		total += e.Percentage
	}
	return total
}
