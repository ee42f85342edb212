package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"obecli/internal/config"
	"obecli/internal/infrastructure"
	"obecli/internal/services"
	"obecli/internal/validation"
)

// fileResult records the outcome of one payload file for the final tally.
type fileResult struct {
	file   string
	course string
	path   string
	err    error
}

func main() {
	inDir := flag.String("in", "", "directory of course payload JSON files (defaults to the configured payloads directory)")
	outDir := flag.String("out", "", "output directory for reports (defaults to the configured reports directory)")
	workers := flag.Int("workers", 4, "maximum number of payloads processed concurrently")
	configPath := flag.String("config", config.DefaultConfigFile, "configuration file path")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *inDir == "" {
		*inDir = cfg.Paths.PayloadsDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	fileValidator := validation.NewFileValidator(logger)
	if err := fileValidator.ValidateInputDirectory(*inDir, "*.json"); err != nil {
		logger.Error("Input directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := fileValidator.ValidateOutputDirectory(*outDir); err != nil {
		logger.Error("Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	payloads, err := filepath.Glob(filepath.Join(*inDir, "*.json"))
	if err != nil {
		logger.Error("Failed to list payload files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(payloads) == 0 {
		logger.Warn("No payload files to process", slog.String("directory", *inDir))
		fmt.Println("No payload files to process")
		return
	}

	logger.Info("Starting batch report generation",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.Int("files", len(payloads)),
		slog.Int("workers", *workers))

	svc := services.NewReportServiceWithLogger(cfg, logger)
	results := runBatch(context.Background(), logger, svc, fileValidator, payloads, *outDir, *workers)

	succeeded, failed := tally(results)
	logger.Info("Batch complete",
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed))

	fmt.Printf("Batch complete: %d succeeded, %d failed\n", succeeded, failed)
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("  FAILED %s: %v\n", r.file, r.err)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// runBatch processes each payload file through the pipeline with bounded
// concurrency. Invalid course file names are reported in the results
// without ever entering the worker pool, and per-file failures never cancel
// sibling workers.
func runBatch(ctx context.Context, logger *slog.Logger, svc *services.ReportService, fileValidator *validation.FileValidator, payloads []string, outDir string, workers int) []fileResult {
	var results []fileResult
	var valid []string
	for _, path := range payloads {
		if _, err := fileValidator.ParseCourseFileName(path); err != nil {
			logger.Warn("Skipping file with invalid course name",
				slog.String("file", filepath.Base(path)),
				slog.String("error", err.Error()))
			results = append(results, fileResult{file: filepath.Base(path), err: err})
			continue
		}
		valid = append(valid, path)
	}

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range valid {
		path := path
		g.Go(func() error {
			info, _ := fileValidator.ParseCourseFileName(path)
			fileLogger := logger.With(slog.String("file", filepath.Base(path)))
			fileLogger.Info("Processing course payload",
				slog.String("course", info.DisplayName()))

			outcome, err := svc.RunFile(ctx, path, &info, outputPathFor(outDir, path))

			result := fileResult{file: filepath.Base(path), course: info.DisplayName(), err: err}
			if outcome != nil {
				result.path = outcome.Path
			}
			if err != nil {
				fileLogger.Error("Course processing failed", slog.String("error", err.Error()))
			} else {
				fileLogger.Info("Report generated", slog.String("path", outcome.Path))
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			return nil
		})
	}
	// Workers report per-file failures through results, never as errors.
	_ = g.Wait()

	return results
}

func tally(results []fileResult) (succeeded, failed int) {
	for _, r := range results {
		if r.err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

// outputPathFor derives a distinct report path from the payload file name so
// concurrent workers never write to the same file.
func outputPathFor(outDir, payloadPath string) string {
	base := filepath.Base(payloadPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+"_CLO_PLO_Results.xlsx")
}
