// Package scoring turns raw per-student assessment scores into CLO scores,
// PLO roll-ups and overall grades. All averages go through the same
// weighted-mean combinator; missing scores are excluded from numerator and
// denominator alike, never treated as zero.
package scoring

import (
	"context"
	"log/slog"
	"sort"

	"obecli/internal/schema"
	"obecli/pkg/contracts/domain"
)

// AggregatorConfig holds the fixed overall-grade rubric. The weights are an
// instructor decision per course, supplied via configuration rather than
// inferred from the data.
type AggregatorConfig struct {
	// OverallWeights maps CLO label to its fractional weight in the
	// overall-grade formula. Unlisted CLOs do not participate.
	OverallWeights map[string]float64
	// BonusLabel is the CLO reserved for bonus points ("CLO 0").
	BonusLabel string
	// BonusModule is the raw score column holding bonus points ("Bonus").
	BonusModule string
}

// DefaultAggregatorConfig returns the rubric of the source course.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		OverallWeights: map[string]float64{
			"CLO 1": 0.15,
			"CLO 4": 0.15,
			"CLO 5": 0.35,
		},
		BonusLabel:  "CLO 0",
		BonusModule: "Bonus",
	}
}

// Aggregator computes score tables from raw assessment data.
type Aggregator struct {
	logger *slog.Logger
	config AggregatorConfig
}

// NewAggregator creates a score aggregator with the given rubric.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(config.OverallWeights) == 0 {
		config.OverallWeights = DefaultAggregatorConfig().OverallWeights
	}
	if config.BonusLabel == "" {
		config.BonusLabel = "CLO 0"
	}
	if config.BonusModule == "" {
		config.BonusModule = "Bonus"
	}
	return &Aggregator{logger: logger, config: config}
}

// CLOScores computes the per-student CLO score table.
//
// A student's score for a CLO is the weighted mean over that CLO's
// assessments of (raw/max)*100, restricted to assessments the student has a
// numeric score for. When a student has no eligible assessment for a CLO,
// the CLO key is omitted for that student rather than recorded as zero; the
// omission is logged as a warning and processing continues.
func (a *Aggregator) CLOScores(ctx context.Context, s *schema.Schema, payload *domain.CoursePayload) domain.CLOScoreTable {
	table := make(domain.CLOScoreTable, len(payload.Students))

	for studentID, rawScores := range payload.Students {
		table[studentID] = make(map[string]float64)

		for _, clo := range s.CLOs {
			assessments := payload.CLOAssessments[clo]
			if len(assessments) == 0 {
				continue
			}

			pairs := make([]WeightedValue, 0, len(assessments))
			for _, assessment := range assessments {
				if assessment.MaxScore <= 0 {
					continue
				}
				raw, ok := rawScores.Score(assessment.Module)
				if !ok {
					continue
				}
				pairs = append(pairs, WeightedValue{
					Value:  (raw / assessment.MaxScore) * 100,
					Weight: assessment.Weight,
				})
			}

			score, ok := WeightedMean(pairs)
			if !ok {
				a.logger.WarnContext(ctx, "student has no eligible assessments for CLO, score omitted",
					slog.String("student_id", studentID),
					slog.String("clo", clo))
				continue
			}
			table[studentID][clo] = Round2(score)
		}
	}

	return table
}

// PLOScores rolls CLO scores up into PLO scores using the course's CLO→PLO
// mapping weights. A CLO with no score for a student contributes nothing,
// and a PLO with no contributing CLO is absent from that student's entry.
func (a *Aggregator) PLOScores(ctx context.Context, payload *domain.CoursePayload, cloScores domain.CLOScoreTable) domain.PLOScoreTable {
	table := make(domain.PLOScoreTable, len(cloScores))

	for studentID, studentCLOs := range cloScores {
		pairs := make(map[string][]WeightedValue)
		for _, mapping := range payload.PLOMappings {
			if mapping.Weight <= 0 {
				continue
			}
			score, ok := studentCLOs[mapping.CLOLabel]
			if !ok {
				continue
			}
			pairs[mapping.PLOLabel] = append(pairs[mapping.PLOLabel], WeightedValue{
				Value:  score,
				Weight: mapping.Weight,
			})
		}

		table[studentID] = make(map[string]float64, len(pairs))
		for plo, ploPairs := range pairs {
			if score, ok := WeightedMean(ploPairs); ok {
				table[studentID][plo] = Round2(score)
			}
		}
	}

	return table
}

// OverallResults computes each student's overall percentage and letter
// grade, sorted by student ID for deterministic output.
//
// The overall grade is the weighted mean of the rubric CLOs the student has
// scores for, normalized by the participating weights, plus the raw bonus
// value. The bonus is additive after normalization, so an overall above 100
// is legitimate and preserved.
func (a *Aggregator) OverallResults(ctx context.Context, payload *domain.CoursePayload, cloScores domain.CLOScoreTable) []domain.StudentResult {
	results := make([]domain.StudentResult, 0, len(cloScores))

	// The fold visits rubric CLOs in label order so float summation order,
	// and with it the result bits, never depend on map iteration.
	rubric := make([]string, 0, len(a.config.OverallWeights))
	for clo := range a.config.OverallWeights {
		rubric = append(rubric, clo)
	}
	rubric = schema.SortLabels(rubric)

	for studentID, studentCLOs := range cloScores {
		pairs := make([]WeightedValue, 0, len(rubric))
		for _, clo := range rubric {
			score, ok := studentCLOs[clo]
			if !ok {
				continue
			}
			pairs = append(pairs, WeightedValue{Value: score, Weight: a.config.OverallWeights[clo]})
		}

		base, ok := WeightedMean(pairs)
		if !ok {
			a.logger.WarnContext(ctx, "student has no scores for any weighted CLO",
				slog.String("student_id", studentID))
			base = 0
		}

		overall := Round2(base + a.bonusValue(payload.Students[studentID]))
		results = append(results, domain.StudentResult{
			StudentID: studentID,
			Overall:   overall,
			Letter:    LetterGrade(overall),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StudentID < results[j].StudentID
	})

	return results
}

// bonusValue resolves the student's raw bonus points. A missing or
// non-numeric bonus cell means zero, never an error.
func (a *Aggregator) bonusValue(rawScores domain.RawScores) float64 {
	if rawScores == nil {
		return 0
	}
	if bonus, ok := rawScores.Score(a.config.BonusModule); ok {
		return bonus
	}
	if bonus, ok := rawScores.Score(a.config.BonusLabel); ok {
		return bonus
	}
	return 0
}
