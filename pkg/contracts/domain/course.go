package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoursePayload is the cleaned course data handed over by the extraction
// step. It carries the CLO definitions, the CLO→PLO mapping rows, the
// per-CLO assessment structure and the raw per-student scores.
type CoursePayload struct {
	CLODefinitions []CLODefinition         `json:"clo_definitions" validate:"required,min=1,dive"`
	PLOMappings    []PLOMapping            `json:"plo_mappings" validate:"dive"`
	CLOAssessments map[string][]Assessment `json:"clo_assessments" validate:"dive,dive"`
	Students       map[string]RawScores    `json:"students" validate:"required,min=1"`
}

// CLODefinition is one row of the course definition section. The label is
// expected to look like "CLO 3"; rows with placeholder descriptions are
// filtered out during schema detection, not here.
type CLODefinition struct {
	Label       string `json:"label" validate:"required"`
	Description string `json:"description"`
}

// PLOMapping associates a CLO with a PLO at a given roll-up weight.
type PLOMapping struct {
	CLOLabel string  `json:"clo_label" validate:"required"`
	PLOLabel string  `json:"plo_label" validate:"required"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=1"`
}

// Assessment describes one graded module mapped to a CLO: the assessment
// name as it appears in the student score columns, its maximum attainable
// score and its fractional weight within the CLO.
type Assessment struct {
	Module   string  `json:"module" validate:"required"`
	MaxScore float64 `json:"max_score" validate:"gte=0"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=1"`
}

// RawScores maps assessment name to the raw recorded score for one student.
// Cells arrive as strings or numbers depending on how dirty the source
// sheet was, so values are kept loose and resolved via Score.
type RawScores map[string]json.RawMessage

// Score resolves the raw cell for an assessment to a numeric score.
// It returns ok=false when the cell is absent, empty, or not numeric;
// such cells are treated as missing, never as zero.
func (r RawScores) Score(module string) (float64, bool) {
	raw, exists := r[module]
	if !exists {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// CLOScoreTable maps student ID to that student's per-CLO scores on a
// 0-100 scale. A CLO with no eligible assessments for a student has no
// entry at all for that student.
type CLOScoreTable map[string]map[string]float64

// PLOScoreTable maps student ID to that student's per-PLO rolled-up scores.
type PLOScoreTable map[string]map[string]float64

// StudentResult is one fully computed row of the report: the student's
// overall percentage and the letter grade it maps to.
type StudentResult struct {
	StudentID string  `json:"student_id"`
	Overall   float64 `json:"overall"`
	Letter    string  `json:"letter"`
}

// CourseInfo holds the components parsed from a course file name such as
// "2515-EE-437-L1.xlsx".
type CourseInfo struct {
	Semester   string `json:"semester"`
	Department string `json:"department"`
	Course     string `json:"course"`
	Section    string `json:"section"`
}

// DisplayName renders the course info the way reports reference a section,
// e.g. "EE 437 - Section L1 (Semester 2515)".
func (c CourseInfo) DisplayName() string {
	return c.Department + " " + c.Course + " - Section " + c.Section + " (Semester " + c.Semester + ")"
}

// CourseCode returns the short department-course identifier, e.g. "EE-437".
func (c CourseInfo) CourseCode() string {
	return c.Department + "-" + c.Course
}
