package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loan-approval/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	incomeModel = `{"kind": "logistic_regression", "coef": [0, 0, 0, 0, 0, 0, 0, 1], "intercept": -40000, "classes": [0, 1]}`
	identity    = `{"kind": "identity", "n_features": 8}`
	columns     = `["age", "gender", "occupation_Engineer", "occupation_Teacher", "occupation_Doctor", "education_level", "marital_status", "income", "credit_score"]`
	sampleCSV   = "age,gender,occupation,education_level,marital_status,income,credit_score,loan_status\n" +
		"32,Male,Engineer,Bachelor,Married,85000,720,Approved\n" +
		"45,Female,Teacher,Master,Single,62000,680,Approved\n" +
		"28,Male,Doctor,Doctoral,Single,120000,750,Approved\n"
)

// setupEnv writes a complete artifact directory and clears every setting.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ModelFile), []byte(incomeModel), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ScalerFile), []byte(identity), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ColumnsFile), []byte(columns), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loan.csv"), []byte(sampleCSV), 0o600))

	for _, key := range []string{
		common.EnvConfigFile, common.EnvModelPath, common.EnvScalerPath, common.EnvColumnsPath,
		common.EnvBundlePath, common.EnvPreviewRows, common.EnvOccupationPrefix, common.EnvDropColumns,
		common.EnvUnknownOccupation, common.EnvLogFormat, common.EnvMetricsFile,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(common.EnvArtifactDir, dir)
	t.Setenv(common.EnvDatasetPath, filepath.Join(dir, "loan.csv"))
	t.Setenv(common.EnvLogLevel, "error")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func predictArgs(age, income, occupation string) []string {
	return []string{
		"predict",
		"--age", age,
		"--gender", "Male",
		"--income", income,
		"--education", "Bachelor",
		"--marital", "Single",
		"--occupation", occupation,
	}
}

func TestPredictCommand(t *testing.T) {
	setupEnv(t)

	testCases := []struct {
		name     string
		age      string
		income   string
		expected string
	}{
		{"approved", "30", "50000", common.MsgApproved},
		{"denied", "30", "30000", common.MsgDenied},
		{"bad age", "abc", "50000", common.MsgInvalidNumeric},
		{"bad income", "30", "12.34.56", common.MsgInvalidNumeric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, "", predictArgs(tc.age, tc.income, "Engineer")...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected+"\n", out)
		})
	}
}

func TestPredictCommand_WritesMetrics(t *testing.T) {
	dir := setupEnv(t)
	metricsFile := filepath.Join(dir, "loan.prom")
	t.Setenv(common.EnvMetricsFile, metricsFile)

	_, err := execute(t, "", predictArgs("30", "50000", "Engineer")...)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ml_predictions_total 1")
	assert.Contains(t, string(data), `loan_verdicts_total{verdict="approved"} 1`)
}

func TestFormCommand(t *testing.T) {
	setupEnv(t)

	stdin := "30\nMale\n50000\nBachelor\nSingle\nTeacher\nquit\n"
	out, err := execute(t, stdin, "form")
	require.NoError(t, err)

	assert.Contains(t, out, "age | gender")
	assert.Contains(t, out, "Occupation [Engineer, Teacher, Doctor]: ")
	assert.Contains(t, out, ">> "+common.MsgApproved)
}

func TestFormCommand_MissingDatasetStillRuns(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv(common.EnvDatasetPath, filepath.Join(dir, "absent.csv"))

	out, err := execute(t, "", "form")
	require.NoError(t, err)
	assert.NotContains(t, out, ">> ")
}

func TestPreviewCommand(t *testing.T) {
	setupEnv(t)
	t.Cleanup(func() { previewRows = 0 })

	out, err := execute(t, "", "preview", "--rows", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, rule and two rows")
}

func TestSchemaCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Features:    8")
	assert.Contains(t, out, "Dropped:     credit_score")
	assert.Contains(t, out, "Occupations: Engineer, Teacher, Doctor")
}

func TestPackCommand(t *testing.T) {
	dir := setupEnv(t)
	bundle := filepath.Join(t.TempDir(), "loan.db")

	out, err := execute(t, "", "pack", "--out", bundle)
	require.NoError(t, err)
	assert.Equal(t, bundle+"\n", out)

	// Packing over an existing bundle is refused.
	_, err = execute(t, "", "pack", "--out", bundle)
	assert.Error(t, err)

	// The bundle alone is enough to evaluate.
	require.NoError(t, os.Remove(filepath.Join(dir, common.ModelFile)))
	t.Setenv(common.EnvBundlePath, bundle)
	out, err = execute(t, "", predictArgs("30", "50000", "Doctor")...)
	require.NoError(t, err)
	assert.Equal(t, common.MsgApproved+"\n", out)
}

func TestMissingArtifacts(t *testing.T) {
	dir := setupEnv(t)
	require.NoError(t, os.Remove(filepath.Join(dir, common.ScalerFile)))

	_, err := execute(t, "", predictArgs("30", "50000", "Engineer")...)
	assert.ErrorContains(t, err, "read scaler")
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug", "json"))
	assert.NoError(t, setupLogging("error", "console"))
	assert.Error(t, setupLogging("loud", "console"))
}
