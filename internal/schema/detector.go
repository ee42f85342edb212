// Package schema discovers which CLOs and PLOs a course actually defines.
// Nothing is hardcoded: the detector inspects the cleaned definition rows
// and mapping section and reports exactly what it finds, in a deterministic
// order, so downstream scoring and rendering never assume a fixed outcome
// count.
package schema

import (
	"context"
	"log/slog"
	"strings"

	"obecli/internal/errors"
	"obecli/pkg/contracts/domain"
)

// minDescriptionLen is the minimum trimmed description length for a CLO
// definition row to count as real rather than a placeholder.
const minDescriptionLen = 10

// Schema holds the detected outcome sets for one course.
type Schema struct {
	// CLOs are the defined CLO labels, sorted ascending by numeric suffix.
	// The bonus CLO is kept here for traceability.
	CLOs []string
	// PLOs are the PLO labels targeted by at least one weighted mapping,
	// sorted ascending by numeric suffix.
	PLOs []string
	// BonusLabel is the CLO reserved for bonus points. It never becomes a
	// report column and is excluded from overall-grade denominators.
	BonusLabel string
}

// ReportCLOs returns the CLO labels that appear as report columns: every
// defined CLO except the bonus label.
func (s *Schema) ReportCLOs() []string {
	cols := make([]string, 0, len(s.CLOs))
	for _, clo := range s.CLOs {
		if clo == s.BonusLabel {
			continue
		}
		cols = append(cols, clo)
	}
	return cols
}

// HasCLO reports whether label is one of the defined CLOs.
func (s *Schema) HasCLO(label string) bool {
	for _, clo := range s.CLOs {
		if clo == label {
			return true
		}
	}
	return false
}

// Detector inspects course payloads and extracts the defined outcome sets.
type Detector struct {
	logger     *slog.Logger
	bonusLabel string
}

// NewDetector creates a schema detector. bonusLabel identifies the CLO
// reserved for bonus points, typically "CLO 0".
func NewDetector(logger *slog.Logger, bonusLabel string) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	if bonusLabel == "" {
		bonusLabel = "CLO 0"
	}
	return &Detector{logger: logger, bonusLabel: bonusLabel}
}

// Detect extracts the defined CLO and PLO sets from the course payload.
//
// A definition row is accepted as a CLO iff its label matches "CLO <n>" and
// its trimmed description is longer than minDescriptionLen characters. A PLO
// exists iff at least one mapping with a positive weight targets it. If no
// CLO survives filtering, Detect returns a schema error and the file must
// not proceed to aggregation.
func (d *Detector) Detect(ctx context.Context, payload *domain.CoursePayload) (*Schema, error) {
	var clos []string
	seen := make(map[string]bool)

	for _, def := range payload.CLODefinitions {
		label := strings.TrimSpace(def.Label)
		if !IsCLOLabel(label) {
			d.logger.DebugContext(ctx, "skipping definition row with unrecognized label",
				slog.String("label", def.Label))
			continue
		}
		if len(strings.TrimSpace(def.Description)) <= minDescriptionLen {
			d.logger.DebugContext(ctx, "skipping CLO with placeholder description",
				slog.String("label", label))
			continue
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		clos = append(clos, label)
	}

	if len(clos) == 0 {
		return nil, errors.NewSchemaError("no CLOs found in course definitions", nil)
	}

	var plos []string
	ploSeen := make(map[string]bool)
	for _, mapping := range payload.PLOMappings {
		if mapping.Weight <= 0 {
			continue
		}
		label := strings.TrimSpace(mapping.PLOLabel)
		if label == "" || ploSeen[label] {
			continue
		}
		ploSeen[label] = true
		plos = append(plos, label)
	}

	s := &Schema{
		CLOs:       SortLabels(clos),
		PLOs:       SortLabels(plos),
		BonusLabel: d.bonusLabel,
	}

	d.logger.InfoContext(ctx, "detected course schema",
		slog.Any("clos", s.CLOs),
		slog.Any("plos", s.PLOs),
		slog.Any("report_columns", s.ReportCLOs()))

	return s, nil
}
