// Package services wires the processing stages into one orchestrated run:
// payload loading and validation, schema detection, score aggregation and
// report rendering. Score computation never depends on export success; on an
// export failure the computed tables are still returned so callers can fall
// back to a console presentation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"obecli/internal/config"
	"obecli/internal/errors"
	"obecli/internal/report"
	"obecli/internal/schema"
	"obecli/internal/scoring"
	"obecli/pkg/contracts/domain"
)

// Outcome is the result of one pipeline run. Score tables are always
// populated once schema detection succeeds, even when the export step
// failed; Path is empty in that case.
type Outcome struct {
	Path      string
	Schema    *schema.Schema
	CLOScores domain.CLOScoreTable
	PLOScores domain.PLOScoreTable
	Results   []domain.StudentResult
}

// ReportService runs the full scoring and report-generation pipeline.
type ReportService struct {
	config     *config.Config
	logger     *slog.Logger
	validate   *validator.Validate
	detector   *schema.Detector
	aggregator *scoring.Aggregator
	renderer   *report.Renderer
}

// NewReportService creates a report service using the default logger.
func NewReportService(cfg *config.Config) *ReportService {
	return NewReportServiceWithLogger(cfg, slog.Default())
}

// NewReportServiceWithLogger creates a report service with a specific logger.
func NewReportServiceWithLogger(cfg *config.Config, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	aggConfig := scoring.AggregatorConfig{
		OverallWeights: cfg.Grading.OverallWeights,
		BonusLabel:     cfg.Grading.BonusLabel,
		BonusModule:    cfg.Grading.BonusModule,
	}

	return &ReportService{
		config:     cfg,
		logger:     logger,
		validate:   validator.New(),
		detector:   schema.NewDetector(logger, cfg.Grading.BonusLabel),
		aggregator: scoring.NewAggregator(logger, aggConfig),
		renderer:   report.NewRenderer(logger, cfg.Paths.ReportsDir),
	}
}

// LoadPayload reads and validates a course payload from a JSON file.
func (s *ReportService) LoadPayload(ctx context.Context, path string) (*domain.CoursePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read payload file", err).
			WithContext("path", path)
	}

	var payload domain.CoursePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.NewParsingError("failed to parse payload JSON", err).
			WithContext("path", path)
	}

	if err := s.validate.Struct(&payload); err != nil {
		return nil, errors.NewAppError(errors.ErrTypeValidation, "payload failed validation", err).
			WithContext("path", path)
	}

	s.logger.InfoContext(ctx, "payload loaded",
		slog.String("path", path),
		slog.Int("clo_definitions", len(payload.CLODefinitions)),
		slog.Int("plo_mappings", len(payload.PLOMappings)),
		slog.Int("students", len(payload.Students)))

	return &payload, nil
}

// Run executes the pipeline over an already loaded payload. Schema failures
// abort before any scores exist; export failures return the error together
// with the fully computed Outcome.
func (s *ReportService) Run(ctx context.Context, payload *domain.CoursePayload, course *domain.CourseInfo, outputPath string) (*Outcome, error) {
	detected, err := s.detector.Detect(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("schema detection failed: %w", err)
	}

	cloScores := s.aggregator.CLOScores(ctx, detected, payload)
	ploScores := s.aggregator.PLOScores(ctx, payload, cloScores)
	results := s.aggregator.OverallResults(ctx, payload, cloScores)

	outcome := &Outcome{
		Schema:    detected,
		CLOScores: cloScores,
		PLOScores: ploScores,
		Results:   results,
	}

	data := &report.ReportData{
		Schema:         detected,
		CLOScores:      cloScores,
		PLOScores:      ploScores,
		Results:        results,
		OverallWeights: s.config.Grading.OverallWeights,
		Course:         course,
	}

	path, err := s.renderer.Export(ctx, data, outputPath)
	if err != nil {
		s.logger.WarnContext(ctx, "report export failed, scores remain available",
			slog.String("error", err.Error()))
		return outcome, err
	}
	outcome.Path = path

	return outcome, nil
}

// RunFile loads a payload file and runs the pipeline over it.
func (s *ReportService) RunFile(ctx context.Context, payloadPath string, course *domain.CourseInfo, outputPath string) (*Outcome, error) {
	payload, err := s.LoadPayload(ctx, payloadPath)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, payload, course, outputPath)
}
