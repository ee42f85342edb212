// Package validation checks course payload files before processing: the
// directory layout around them and the course file naming convention
// SSSS-DEPT-CCC-SN (semester, department, course number, section), as in
// "2515-EE-437-L1.json".
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"obecli/internal/errors"
	"obecli/pkg/contracts/domain"
)

// Component patterns of a course file name.
var (
	semesterRe   = regexp.MustCompile(`^\d{4}$`)
	departmentRe = regexp.MustCompile(`^[A-Za-z]{2,4}$`)
	courseRe     = regexp.MustCompile(`^\d{3}$`)
	sectionRe    = regexp.MustCompile(`^[LT]\d+$`)
)

// defaultExtensions are the payload extensions accepted when none are
// configured explicitly.
var defaultExtensions = []string{".json"}

// FileValidator provides file and naming validation for the report CLIs.
type FileValidator struct {
	logger     *slog.Logger
	extensions []string
}

// NewFileValidator creates a file validator accepting the given payload
// extensions (lowercase, dot included). With none given it accepts .json.
func NewFileValidator(logger *slog.Logger, extensions ...string) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	return &FileValidator{
		logger:     logger,
		extensions: extensions,
	}
}

// ParseCourseFileName validates a course file name against the naming
// convention and returns the parsed course components. Department and
// section are normalized to upper case.
func (v *FileValidator) ParseCourseFileName(path string) (domain.CourseInfo, error) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if !v.allowedExtension(ext) {
		return domain.CourseInfo{}, errors.NewValidationError(
			fmt.Sprintf("invalid file extension %q, expected one of %v", ext, v.extensions))
	}

	parts := strings.Split(name, "-")
	if len(parts) != 4 {
		return domain.CourseInfo{}, errors.NewValidationError(
			fmt.Sprintf("invalid file name structure %q: expected 4 dash-separated components, found %d", base, len(parts)))
	}

	semester, department, course, section := parts[0], parts[1], parts[2], strings.ToUpper(parts[3])

	if !semesterRe.MatchString(semester) {
		return domain.CourseInfo{}, errors.NewValidationError(
			fmt.Sprintf("invalid semester code %q: must be exactly 4 digits", semester))
	}
	if !departmentRe.MatchString(department) {
		return domain.CourseInfo{}, errors.NewValidationError(
			fmt.Sprintf("invalid department code %q: must be 2-4 letters", department))
	}
	if !courseRe.MatchString(course) {
		return domain.CourseInfo{}, errors.NewValidationError(
			fmt.Sprintf("invalid course code %q: must be exactly 3 digits", course))
	}
	if !sectionRe.MatchString(section) {
		return domain.CourseInfo{}, errors.NewValidationError(
			fmt.Sprintf("invalid section code %q: must be L or T followed by digits", parts[3]))
	}

	info := domain.CourseInfo{
		Semester:   semester,
		Department: strings.ToUpper(department),
		Course:     course,
		Section:    section,
	}

	v.logger.Debug("course file name validated",
		slog.String("file", base),
		slog.String("course", info.DisplayName()))

	return info, nil
}

func (v *FileValidator) allowedExtension(ext string) bool {
	for _, allowed := range v.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ValidateInputDirectory validates that the payload directory exists and
// reports how many candidate files it holds. An empty directory is not an
// error, just nothing to process.
func (v *FileValidator) ValidateInputDirectory(dir string, requiredPattern string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("input directory does not exist",
			slog.String("directory", dir))
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if requiredPattern != "" {
		pattern := filepath.Join(dir, requiredPattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("failed to check for files: %w", err)
		}
		if len(matches) == 0 {
			v.logger.Warn("no files matching pattern found",
				slog.String("directory", dir),
				slog.String("pattern", requiredPattern))
			return nil
		}
		v.logger.Info("input directory validated",
			slog.String("directory", dir),
			slog.Int("files_found", len(matches)),
			slog.String("pattern", requiredPattern))
	}

	return nil
}

// ValidateOutputDirectory ensures the reports directory exists and is
// writable, creating it when missing.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}

// ValidateFile checks that a specific payload file exists and is readable.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
