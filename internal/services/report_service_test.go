package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obecli/internal/config"
	"obecli/internal/errors"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Paths: config.PathsConfig{
			PayloadsDir: filepath.Join(dir, "payloads"),
			ReportsDir:  dir,
			LogsDir:     filepath.Join(dir, "logs"),
		},
		Grading: config.GradingConfig{
			OverallWeights: config.DefaultOverallWeights(),
			BonusLabel:     "CLO 0",
			BonusModule:    "Bonus",
		},
	}
}

const validPayload = `{
	"clo_definitions": [
		{"label": "CLO 1", "description": "Analyze circuits using nodal and mesh techniques"},
		{"label": "CLO 4", "description": "Design amplifier stages to a given specification"}
	],
	"plo_mappings": [
		{"clo_label": "CLO 1", "plo_label": "PLO 1", "weight": 1.0}
	],
	"clo_assessments": {
		"CLO 1": [{"module": "Quiz 1", "max_score": 10, "weight": 1.0}],
		"CLO 4": [{"module": "Lab 1", "max_score": 20, "weight": 1.0}]
	},
	"students": {
		"S1": {"Quiz 1": 8, "Lab 1": "15"},
		"S2": {"Quiz 1": "", "Lab 1": 10}
	}
}`

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2515-EE-437-L1.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunFile(t *testing.T) {
	cfg := testConfig(t)
	svc := NewReportService(cfg)

	outputPath := filepath.Join(cfg.Paths.ReportsDir, "out.xlsx")
	outcome, err := svc.RunFile(context.Background(), writePayload(t, validPayload), nil, outputPath)
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, outputPath, outcome.Path)
	_, statErr := os.Stat(outputPath)
	assert.NoError(t, statErr)

	// S1: Quiz 1 8/10 -> 80, Lab 1 15/20 -> 75.
	assert.InDelta(t, 80.0, outcome.CLOScores["S1"]["CLO 1"], 1e-9)
	assert.InDelta(t, 75.0, outcome.CLOScores["S1"]["CLO 4"], 1e-9)
	assert.InDelta(t, 80.0, outcome.PLOScores["S1"]["PLO 1"], 1e-9)

	// S2's empty Quiz 1 cell means no CLO 1 score at all.
	_, hasCLO1 := outcome.CLOScores["S2"]["CLO 1"]
	assert.False(t, hasCLO1)

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "S1", outcome.Results[0].StudentID)
	assert.Equal(t, "S2", outcome.Results[1].StudentID)

	// S1 overall: weighted mean of CLO 1 (0.15) and CLO 4 (0.15) over the
	// rubric CLOs present = (80*0.15 + 75*0.15) / 0.30 = 77.5.
	assert.InDelta(t, 77.5, outcome.Results[0].Overall, 1e-9)
	assert.Equal(t, "B", outcome.Results[0].Letter)
}

func TestLoadPayloadErrors(t *testing.T) {
	svc := NewReportService(testConfig(t))
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.LoadPayload(ctx, filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := svc.LoadPayload(ctx, writePayload(t, "{not json"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})

	t.Run("no students", func(t *testing.T) {
		_, err := svc.LoadPayload(ctx, writePayload(t, `{
			"clo_definitions": [{"label": "CLO 1", "description": "A sufficiently long description"}],
			"students": {}
		}`))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	})
}

func TestRunFileSchemaFailure(t *testing.T) {
	svc := NewReportService(testConfig(t))

	// Placeholder descriptions are filtered out, leaving no CLOs.
	payload := `{
		"clo_definitions": [{"label": "CLO 1", "description": "tbd"}],
		"students": {"S1": {"Quiz 1": 8}}
	}`

	outcome, err := svc.RunFile(context.Background(), writePayload(t, payload), nil, "")
	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestRunFileExportFailureKeepsScores(t *testing.T) {
	cfg := testConfig(t)
	svc := NewReportService(cfg)

	badPath := filepath.Join(cfg.Paths.ReportsDir, "missing", "nested", "out.xlsx")
	outcome, err := svc.RunFile(context.Background(), writePayload(t, validPayload), nil, badPath)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeExport))

	require.NotNil(t, outcome)
	assert.Empty(t, outcome.Path)
	assert.InDelta(t, 80.0, outcome.CLOScores["S1"]["CLO 1"], 1e-9)
	require.Len(t, outcome.Results, 2)
}
