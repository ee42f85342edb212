package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obecli/internal/errors"
	"obecli/pkg/contracts/domain"
)

func TestParseCourseFileName(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    domain.CourseInfo
		wantErr string
	}{
		{
			name: "valid lab section",
			path: "2515-EE-437-L1.json",
			want: domain.CourseInfo{Semester: "2515", Department: "EE", Course: "437", Section: "L1"},
		},
		{
			name: "valid tutorial section with long department",
			path: "2412-MGMT-301-T2.json",
			want: domain.CourseInfo{Semester: "2412", Department: "MGMT", Course: "301", Section: "T2"},
		},
		{
			name: "lowercase department and section normalized",
			path: "2511-bio-205-l3.json",
			want: domain.CourseInfo{Semester: "2511", Department: "BIO", Course: "205", Section: "L3"},
		},
		{
			name: "multi digit section",
			path: "2515-CS-101-L10.json",
			want: domain.CourseInfo{Semester: "2515", Department: "CS", Course: "101", Section: "L10"},
		},
		{
			name: "directory prefix ignored",
			path: filepath.Join("some", "dir", "2515-EE-437-L1.json"),
			want: domain.CourseInfo{Semester: "2515", Department: "EE", Course: "437", Section: "L1"},
		},
		{
			name:    "semester too short",
			path:    "251-EE-437-L1.json",
			wantErr: "semester",
		},
		{
			name:    "department with digits",
			path:    "2515-E1-437-L1.json",
			wantErr: "department",
		},
		{
			name:    "course number too short",
			path:    "2515-EE-43-L1.json",
			wantErr: "course",
		},
		{
			name:    "section not L or T",
			path:    "2515-EE-437-A1.json",
			wantErr: "section",
		},
		{
			name:    "too few components",
			path:    "2515-EE-437.json",
			wantErr: "structure",
		},
		{
			name:    "wrong extension",
			path:    "2515-EE-437-L1.csv",
			wantErr: "extension",
		},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ParseCourseFileName(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCourseFileNameCustomExtensions(t *testing.T) {
	v := NewFileValidator(nil, ".xlsx", ".xls")

	_, err := v.ParseCourseFileName("2515-EE-437-L1.xlsx")
	require.NoError(t, err)

	_, err = v.ParseCourseFileName("2515-EE-437-L1.json")
	require.Error(t, err)
}

func TestCourseInfoDisplayName(t *testing.T) {
	v := NewFileValidator(nil)
	info, err := v.ParseCourseFileName("2515-EE-437-L1.json")
	require.NoError(t, err)
	assert.Equal(t, "EE 437 - Section L1 (Semester 2515)", info.DisplayName())
	assert.Equal(t, "EE-437", info.CourseCode())
}

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("missing directory", func(t *testing.T) {
		err := v.ValidateInputDirectory(filepath.Join(t.TempDir(), "nope"), "*.json")
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		err := v.ValidateInputDirectory(path, "")
		assert.Error(t, err)
	})

	t.Run("empty directory is not an error", func(t *testing.T) {
		err := v.ValidateInputDirectory(t.TempDir(), "*.json")
		assert.NoError(t, err)
	})
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "reports", "nested")
	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestValidateFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, v.ValidateFile(filepath.Join(dir, "absent.json")))
	})

	t.Run("directory rejected", func(t *testing.T) {
		assert.Error(t, v.ValidateFile(dir))
	})

	t.Run("readable file accepted", func(t *testing.T) {
		path := filepath.Join(dir, "payload.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		assert.NoError(t, v.ValidateFile(path))
	})
}
