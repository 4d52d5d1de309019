package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/internal/config"
	"github.com/jakechorley/yellow-box/pkg/clients/xlsxclient"
	"github.com/jakechorley/yellow-box/pkg/core/model"
)

const testNames = `# test roster
Smith, Alice
Jones, Bob
Brown, Carol
White, Dan
Green, Eve
Black, Finn
`

func newTestApp(now time.Time) *AppContext {
	return &AppContext{
		Cfg:    config.Default(),
		Logger: zap.NewNop(),
		Now:    func() time.Time { return now },
	}
}

func newTestRoot(app *AppContext) *cobra.Command {
	root := &cobra.Command{Use: "rota", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(RollingCmd(app), PoolCmd(app), MonthlyCmd(app))
	return root
}

// execute runs the CLI with args the way main does and returns stdout
func execute(t *testing.T, app *AppContext, args ...string) (string, error) {
	t.Helper()
	root := newTestRoot(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(NormalizeArgs(root, args))
	err := root.Execute()
	return out.String(), err
}

func writeNames(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(testNames), 0644))
	return path
}

func TestRollingCommand(t *testing.T) {
	dir := t.TempDir()
	names := writeNames(t, dir)
	out := filepath.Join(dir, "schedule.xlsx")

	stdout, err := execute(t, newTestApp(time.Now()),
		"rolling", "-names", names, "-start", "2025-01-06", "-out", out, "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, stdout, "rolling rota starting Mon 06 Jan 2025")
	assert.Contains(t, stdout, "Seed: 7")
	assert.Contains(t, stdout, "Schedule written to")

	path := filepath.Join(dir, "schedule_2025-01-06.xlsx")
	rows, err := xlsxclient.NewClient("", nil, zap.NewNop()).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 13, "header plus two weeks per person")
	assert.Equal(t, []string{"Year", "Week", "Person"}, rows[0])
}

func TestRollingCommand_SameSeedSameFile(t *testing.T) {
	dir := t.TempDir()
	names := writeNames(t, dir)
	client := xlsxclient.NewClient("", nil, zap.NewNop())

	read := func(name string) [][]string {
		out := filepath.Join(dir, name)
		_, err := execute(t, newTestApp(time.Now()), "rolling", "-names", names, "-start", "2025-01-06", "-out", out, "--seed", "99")
		require.NoError(t, err)
		rows, err := client.ReadRows(filepath.Join(dir, xlsxclient.OutputPath(name, "2025-01-06")))
		require.NoError(t, err)
		return rows
	}

	assert.Equal(t, read("a.xlsx"), read("b.xlsx"))
}

func TestRollingCommand_NegativeWeeks(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, newTestApp(time.Now()),
		"rolling", "-names", writeNames(t, dir), "--weeks", "-3", "--dry-run")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestRollingCommand_InvalidStartDate(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, newTestApp(time.Now()),
		"rolling", "-names", writeNames(t, dir), "-start", "06/01/2025", "--dry-run")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPoolCommand_DefaultsToToday(t *testing.T) {
	dir := t.TempDir()
	names := writeNames(t, dir)
	out := filepath.Join(dir, "schedule.xlsx")

	stdout, err := execute(t, newTestApp(time.Date(2025, 1, 6, 15, 30, 0, 0, time.UTC)),
		"pool", "-names", names, "-out", out, "--seed", "3")
	require.NoError(t, err)

	assert.Contains(t, stdout, "pool rota starting Mon 06 Jan 2025")
	assert.FileExists(t, filepath.Join(dir, "schedule_2025-01-06.xlsx"))
}

func TestPoolCommand_BacksUpPreviousSchedule(t *testing.T) {
	dir := t.TempDir()
	names := writeNames(t, dir)
	out := filepath.Join(dir, "schedule.xlsx")
	app := newTestApp(time.Now())
	args := []string{"pool", "-names", names, "-start", "2025-01-06", "-out", out}

	_, err := execute(t, app, args...)
	require.NoError(t, err)

	stdout, err := execute(t, app, args...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Previous schedule moved to")

	backups, err := filepath.Glob(filepath.Join(dir, "schedule_20250106_backup*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestPoolCommand_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schedule.xlsx")

	stdout, err := execute(t, newTestApp(time.Now()),
		"pool", "-names", writeNames(t, dir), "-start", "2025-01-06", "-out", out, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Dry run")
	assert.NoFileExists(t, filepath.Join(dir, "schedule_2025-01-06.xlsx"))
}

func TestPoolCommand_OutputFromConfig(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(time.Now())
	app.Cfg.Output = filepath.Join(dir, "custom.xlsx")

	_, err := execute(t, app, "pool", "-names", writeNames(t, dir), "-start", "2025-01-06")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "custom_2025-01-06.xlsx"))
}

func TestPoolCommand_InvalidFallback(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, newTestApp(time.Now()),
		"pool", "-names", writeNames(t, dir), "--fallback", "sometimes", "--dry-run")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPoolCommand_MissingNamesFile(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, newTestApp(time.Now()),
		"pool", "-names", filepath.Join(dir, "nobody.txt"), "--dry-run")
	assert.ErrorIs(t, err, model.ErrFileNotFound)
}

func TestPoolCommand_NamesRequired(t *testing.T) {
	_, err := execute(t, newTestApp(time.Now()), "pool", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names")
}

func TestMonthlyCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schedule.xlsx")

	stdout, err := execute(t, newTestApp(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)),
		"monthly", "-names", writeNames(t, dir), "-start", "March", "-out", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "monthly rota starting Mon 03 Mar 2025")
	path := filepath.Join(dir, "schedule_march2025.xlsx")
	rows, err := xlsxclient.NewClient("", nil, zap.NewNop()).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Week", "Assigned"}, rows[0])
	assert.Equal(t, "Mon, 03 Mar - 16 Mar", rows[1][0])
}

func TestMonthlyCommand_PastMonthRollsToNextYear(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schedule.xlsx")

	_, err := execute(t, newTestApp(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		"monthly", "-names", writeNames(t, dir), "-start", "march", "-out", out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "schedule_march2026.xlsx"))
}

func TestMonthlyCommand_ExplicitYear(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schedule.xlsx")

	_, err := execute(t, newTestApp(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		"monthly", "-names", writeNames(t, dir), "-start", "march", "-year", "2024", "-out", out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "schedule_march2024.xlsx"))
}

func TestMonthlyCommand_InvalidMonth(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, newTestApp(time.Now()),
		"monthly", "-names", writeNames(t, dir), "-start", "Smarch", "--dry-run")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
