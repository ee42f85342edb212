package scoring

// gradeBand is one row of the letter-grade scale.
type gradeBand struct {
	Min    float64
	Letter string
}

// gradeScale is the fixed university grading scale, evaluated top-down with
// inclusive lower bounds: a boundary value belongs to the higher band.
var gradeScale = []gradeBand{
	{95, "A+"},
	{90, "A"},
	{85, "A-"},
	{80, "B+"},
	{75, "B"},
	{70, "B-"},
	{67, "C+"},
	{63, "C"},
	{60, "C-"},
}

// LetterGrade maps a numeric overall score to its letter grade.
func LetterGrade(score float64) string {
	for _, band := range gradeScale {
		if score >= band.Min {
			return band.Letter
		}
	}
	return "F"
}
