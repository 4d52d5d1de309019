package xlsxclient

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// DefaultSheetName is used when no sheet name is configured
const DefaultSheetName = "Schedule"

// maxBackupAttempts bounds the search for an unused backup name
const maxBackupAttempts = 50

// Client writes schedules to local xlsx workbooks
type Client struct {
	sheetName string
	rng       *rand.Rand
	logger    *zap.Logger
}

// NewClient creates an xlsx client. rng picks backup file suffixes.
func NewClient(sheetName string, rng *rand.Rand, logger *zap.Logger) *Client {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Client{
		sheetName: sheetName,
		rng:       rng,
		logger:    logger,
	}
}

// SheetName returns the name of the sheet schedules are written to
func (c *Client) SheetName() string {
	return c.sheetName
}

// OutputPath inserts suffix between the base name and the extension: schedule.xlsx -> schedule_<suffix>.xlsx
func OutputPath(out, suffix string) string {
	ext := filepath.Ext(out)
	base := strings.TrimSuffix(out, ext)
	return fmt.Sprintf("%s_%s%s", base, suffix, ext)
}

// BackupPath builds <base>_<stamp>_backup<n><ext> from the configured output path
func BackupPath(out, stamp string, n int) string {
	ext := filepath.Ext(out)
	base := strings.TrimSuffix(out, ext)
	return fmt.Sprintf("%s_%s_backup%04d%s", base, stamp, n, ext)
}

// BackupExisting renames path to a backup name if it exists.
// out is the configured output path the backup name is derived from.
// It returns the backup path, or "" when there was nothing to back up.
func (c *Client) BackupExisting(path, out, stamp string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: failed to check existing file %s: %w", model.ErrExportFailure, path, err)
	}

	for attempt := 0; attempt < maxBackupAttempts; attempt++ {
		backup := BackupPath(out, stamp, 1000+c.rng.IntN(9000))
		if _, err := os.Stat(backup); err == nil {
			continue
		}

		if err := os.Rename(path, backup); err != nil {
			return "", fmt.Errorf("%w: failed to back up %s: %w", model.ErrExportFailure, path, err)
		}

		c.logger.Info("Backed up existing schedule", zap.String("from", path), zap.String("to", backup))
		return backup, nil
	}

	return "", fmt.Errorf("%w: no free backup name for %s after %d attempts", model.ErrExportFailure, path, maxBackupAttempts)
}

// ReadRows returns every row of the schedule sheet in the workbook at path, header included
func (c *Client) ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(c.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", c.sheetName, err)
	}
	return rows, nil
}
