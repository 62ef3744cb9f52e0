package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfv/schemarefactor/internal/schemafile"
)

const sampleSchema = `model ProcessSegment {
  id String @id
}

model Job {
  segment ProcessSegment @relation
}
`

func writeSchema(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleSchema), 0o644))
	return path
}

func TestRunApplyMigratesInPlace(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "schema.prisma")
	reportPath := filepath.Join(dir, "report.txt")

	require.NoError(t, runApply([]string{schemaPath}, "text", reportPath))

	migrated, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	assert.Contains(t, string(migrated), "model Operation { // ISA-95: Process Segment")
	assert.Contains(t, string(migrated), "operation Operation @relation")

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "renamed ProcessSegment model")
	assert.Contains(t, string(report), "renamed ProcessSegment relations")
	assert.Contains(t, string(report), "1x")
}

func TestRunApplySecondRunReportsNoChanges(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "schema.prisma")

	require.NoError(t, runApply([]string{schemaPath}, "text", filepath.Join(dir, "first.txt")))

	first, err := os.ReadFile(schemaPath)
	require.NoError(t, err)

	reportPath := filepath.Join(dir, "second.txt")
	require.NoError(t, runApply([]string{schemaPath}, "text", reportPath))

	second, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "no changes (schema already migrated)")
}

func TestRunApplyYAMLReport(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "schema.prisma")
	reportPath := filepath.Join(dir, "report.yaml")

	require.NoError(t, runApply([]string{schemaPath}, "yaml", reportPath))

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "schema: "+schemaPath)
	assert.Contains(t, string(report), "description: renamed ProcessSegment model")
}

func TestRunApplyMissingSchema(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.prisma")

	err := runApply([]string{missing}, "text", filepath.Join(dir, "report.txt"))
	require.Error(t, err)
	assert.True(t, schemafile.IsSourceNotFound(err))
}

func TestRunApplyKeepsGoingAfterFailure(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	good := writeSchema(t, dir, "good.prisma")
	missing := filepath.Join(dir, "nope.prisma")
	reportPath := filepath.Join(dir, "report.txt")

	err := runApply([]string{missing, good}, "text", reportPath)
	require.Error(t, err)

	// The healthy pipeline still ran to completion and reported.
	migrated, rerr := os.ReadFile(good)
	require.NoError(t, rerr)
	assert.Contains(t, string(migrated), "model Operation {")

	report, rerr := os.ReadFile(reportPath)
	require.NoError(t, rerr)
	assert.Contains(t, string(report), "renamed ProcessSegment model")
}

func TestRunPlanLeavesSchemaUntouched(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "schema.prisma")
	outPath := filepath.Join(dir, "preview.prisma")

	require.NoError(t, runPlan(schemaPath, outPath))

	original, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	assert.Equal(t, sampleSchema, string(original))

	preview, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(preview), "model Operation { // ISA-95: Process Segment")
	assert.NotContains(t, string(preview), "model ProcessSegment {")
}
