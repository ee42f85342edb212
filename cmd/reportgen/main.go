package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"obecli/internal/config"
	"obecli/internal/errors"
	"obecli/internal/infrastructure"
	"obecli/internal/services"
	"obecli/internal/validation"
	"obecli/pkg/contracts/domain"
)

func main() {
	payloadPath := flag.String("payload", "", "course payload JSON file (required)")
	outPath := flag.String("out", "", "output .xlsx path (defaults to a timestamped file under the reports directory)")
	configPath := flag.String("config", config.DefaultConfigFile, "configuration file path")
	flag.Parse()

	if *payloadPath == "" {
		fmt.Fprintln(os.Stderr, "usage: reportgen -payload <course-payload.json> [-out report.xlsx]")
		os.Exit(2)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Single-file mode is explicit intent, so a nonconforming name only
	// warns and the course metadata stays empty.
	var course *domain.CourseInfo
	fileValidator := validation.NewFileValidator(logger)
	if info, err := fileValidator.ParseCourseFileName(*payloadPath); err != nil {
		logger.Warn("Payload file name does not match the course naming convention",
			slog.String("file", *payloadPath),
			slog.String("error", err.Error()))
	} else {
		course = &info
		logger.Info("Processing course",
			slog.String("course", info.DisplayName()))
	}

	svc := services.NewReportServiceWithLogger(cfg, logger)

	outcome, err := svc.RunFile(ctx, *payloadPath, course, *outPath)
	if err != nil {
		if outcome != nil && errors.IsType(err, errors.ErrTypeExport) {
			logger.Error("Report export failed, printing results to console",
				slog.String("error", err.Error()))
			printOutcome(outcome)
			os.Exit(1)
		}
		logger.Error("Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Report generated",
		slog.String("path", outcome.Path),
		slog.Int("students", len(outcome.Results)))
	fmt.Printf("Report written to %s\n", outcome.Path)
}

// printOutcome dumps the computed score tables to stdout when the
// spreadsheet could not be written.
func printOutcome(outcome *services.Outcome) {
	cloColumns := outcome.Schema.ReportCLOs()
	ploColumns := outcome.Schema.PLOs

	fmt.Println("Computed results:")
	for _, result := range outcome.Results {
		fmt.Printf("  %s: overall %.2f (%s)\n", result.StudentID, result.Overall, result.Letter)
		for _, clo := range cloColumns {
			if score, ok := outcome.CLOScores[result.StudentID][clo]; ok {
				fmt.Printf("    %s: %.2f\n", clo, score)
			}
		}
		for _, plo := range ploColumns {
			if score, ok := outcome.PLOScores[result.StudentID][plo]; ok {
				fmt.Printf("    %s: %.2f\n", plo, score)
			}
		}
	}
}
