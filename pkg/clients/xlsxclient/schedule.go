package xlsxclient

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// PublishedSchedule is the complete schedule handed to the exporter
type PublishedSchedule struct {
	RunID  string
	Policy model.Policy
	Title  string
	Rows   []model.ScheduleRow
}

// ExportResult describes what the export did on disk
type ExportResult struct {
	Path       string
	BackupPath string
	RowCount   int
}

// Export writes the schedule to path. An existing file at path is first renamed to a backup
// named from out and stamp; the rename completes before the new workbook is written.
// If the write fails the backup stays where it is.
func (c *Client) Export(path, out, stamp string, schedule *PublishedSchedule) (*ExportResult, error) {
	backup, err := c.BackupExisting(path, out, stamp)
	if err != nil {
		return nil, err
	}

	if err := c.writeWorkbook(path, schedule); err != nil {
		if backup != "" {
			c.logger.Error("Schedule write failed after backup; previous schedule kept at backup path",
				zap.String("backup", backup), zap.Error(err))
		}
		return nil, err
	}

	c.logger.Info("Schedule written",
		zap.String("path", path),
		zap.Int("rows", len(schedule.Rows)))

	return &ExportResult{
		Path:       path,
		BackupPath: backup,
		RowCount:   len(schedule.Rows),
	}, nil
}

func (c *Client) writeWorkbook(path string, schedule *PublishedSchedule) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", c.sheetName); err != nil {
		return fmt.Errorf("%w: failed to name sheet: %w", model.ErrExportFailure, err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Identifier:  schedule.RunID,
		Title:       schedule.Title,
		Description: fmt.Sprintf("%s rota", schedule.Policy),
		Creator:     "yellow-box",
	}); err != nil {
		return fmt.Errorf("%w: failed to set document properties: %w", model.ErrExportFailure, err)
	}

	header := Header(schedule.Policy)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(c.sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("%w: failed to write header: %w", model.ErrExportFailure, err)
	}

	for i, row := range schedule.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrExportFailure, err)
		}
		values := RowCells(schedule.Policy, row)
		if err := f.SetSheetRow(c.sheetName, cell, &values); err != nil {
			return fmt.Errorf("%w: failed to write row %d: %w", model.ErrExportFailure, i+1, err)
		}
	}

	if err := c.styleSheet(f, len(header)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", model.ErrExportFailure, path, err)
	}
	return nil
}

// styleSheet makes the header bold and widens the columns
func (c *Client) styleSheet(f *excelize.File, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create header style: %w", model.ErrExportFailure, err)
	}

	lastCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrExportFailure, err)
	}

	if err := f.SetCellStyle(c.sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("%w: failed to style header: %w", model.ErrExportFailure, err)
	}
	if err := f.SetColWidth(c.sheetName, "A", lastCol, 24); err != nil {
		return fmt.Errorf("%w: failed to set column widths: %w", model.ErrExportFailure, err)
	}
	return nil
}

// Header returns the header row for the policy
func Header(policy model.Policy) []string {
	return policy.Columns()
}

// RowCells renders a schedule row into cell values matching Header
func RowCells(policy model.Policy, row model.ScheduleRow) []interface{} {
	switch policy {
	case model.PolicyRolling:
		return []interface{}{row.Year, row.Week, personAt(row.People, 0)}
	case model.PolicyMonthly:
		return []interface{}{row.Week, strings.Join(row.People, ", ")}
	default:
		cells := []interface{}{row.Week}
		for i := 0; i < policy.GroupSize(); i++ {
			cells = append(cells, personAt(row.People, i))
		}
		return cells
	}
}

func personAt(people []string, i int) string {
	if i < len(people) {
		return people[i]
	}
	return ""
}
