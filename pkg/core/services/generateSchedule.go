package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/internal/config"
	"github.com/jakechorley/yellow-box/pkg/clients/xlsxclient"
	"github.com/jakechorley/yellow-box/pkg/core/allocator"
	"github.com/jakechorley/yellow-box/pkg/core/calendar"
	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// ScheduleRequest describes one rota to generate
type ScheduleRequest struct {
	Policy model.Policy
	Roster []model.Person

	// Start is the first day of the rota (rolling and pool policies)
	Start time.Time

	// Month and Year place a month-aligned rota (monthly policy). Year also bounds the
	// pool policy; it defaults to the year of Start.
	Month time.Month
	Year  int

	// Weeks overrides the number of weeks of a rolling rota so it can wrap around the roster
	Weeks int

	// Fallback overrides the policy's default fallback
	Fallback model.FallbackPolicy

	// Blackouts are extra recurring windows on top of the Christmas weeks
	Blackouts []config.BlackoutRule

	// Output is the configured output path; the date or month suffix is added to it
	Output string

	Rand *rand.Rand
}

// ScheduleResult contains the generated rota, ready to export
type ScheduleResult struct {
	RunID          string
	Policy         model.Policy
	Start          time.Time
	Assignments    []model.Assignment
	Rows           []model.ScheduleRow
	FallbackBlocks []int
	Unassigned     []model.Person

	// OutputPath is where the schedule will be written
	OutputPath string

	// BackupStamp goes into the name of a backup of an existing schedule at OutputPath
	BackupStamp string
}

// ScheduleExporter writes a finished schedule to disk
type ScheduleExporter interface {
	Export(path, out, stamp string, schedule *xlsxclient.PublishedSchedule) (*xlsxclient.ExportResult, error)
}

// GenerateSchedule builds the weeks, removes blacked out weeks, partitions the rest into
// blocks and assigns people to every block. Nothing is written to disk.
func GenerateSchedule(req ScheduleRequest, logger *zap.Logger) (*ScheduleResult, error) {
	if !req.Policy.IsValid() {
		return nil, fmt.Errorf("%w: unknown policy %q", model.ErrInvalidInput, req.Policy)
	}
	if req.Rand == nil {
		return nil, fmt.Errorf("schedule generation requires a random source")
	}
	if len(req.Roster) < req.Policy.GroupSize() {
		return nil, fmt.Errorf("%w: the %s policy needs at least %d people, got %d",
			model.ErrInsufficientRoster, req.Policy, req.Policy.GroupSize(), len(req.Roster))
	}

	runID := uuid.New().String()
	logger.Info("Generating schedule",
		zap.String("run_id", runID),
		zap.String("policy", string(req.Policy)),
		zap.Int("people", len(req.Roster)))

	recurring, err := convertBlackoutRules(req.Blackouts, logger)
	if err != nil {
		return nil, err
	}
	blackout := calendar.Blackout{Recurring: recurring}

	start, blocks, err := buildBlocks(req, blackout)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no schedulable blocks from %s", model.ErrInvalidInput, start.Format(model.DateFormat))
	}

	logger.Debug("Built blocks",
		zap.Time("start", start),
		zap.Int("blocks", len(blocks)),
		zap.String("first_block", blocks[0].Label()),
		zap.String("last_block", blocks[len(blocks)-1].Label()))

	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		Policy:   req.Policy,
		Fallback: req.Fallback,
		Roster:   req.Roster,
		Blocks:   blocks,
		Rand:     req.Rand,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate rota: %w", err)
	}

	if len(outcome.Unassigned) > 0 {
		logger.Info("Some people have no block in this rota", zap.Strings("people", fullNames(outcome.Unassigned)))
	}

	suffix, stamp := outputNaming(req, start)
	output := req.Output
	if output == "" {
		output = config.DefaultOutput
	}

	return &ScheduleResult{
		RunID:          runID,
		Policy:         req.Policy,
		Start:          start,
		Assignments:    outcome.Assignments,
		Rows:           buildRows(req.Policy, outcome.Assignments),
		FallbackBlocks: outcome.FallbackBlocks,
		Unassigned:     outcome.Unassigned,
		OutputPath:     xlsxclient.OutputPath(output, suffix),
		BackupStamp:    stamp,
	}, nil
}

// PublishSchedule hands a generated schedule to the exporter
func PublishSchedule(exporter ScheduleExporter, result *ScheduleResult, output string, logger *zap.Logger) (*xlsxclient.ExportResult, error) {
	if output == "" {
		output = config.DefaultOutput
	}

	logger.Debug("Publishing schedule",
		zap.String("run_id", result.RunID),
		zap.String("path", result.OutputPath),
		zap.Int("rows", len(result.Rows)))

	exported, err := exporter.Export(result.OutputPath, output, result.BackupStamp, &xlsxclient.PublishedSchedule{
		RunID:  result.RunID,
		Policy: result.Policy,
		Title:  fmt.Sprintf("Rota from %s", result.Start.Format(model.DateFormat)),
		Rows:   result.Rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export schedule: %w", err)
	}

	return exported, nil
}

// buildBlocks resolves the start date of the rota and produces its blocks
func buildBlocks(req ScheduleRequest, blackout calendar.Blackout) (time.Time, []model.Block, error) {
	weeksPerBlock := req.Policy.WeeksPerBlock()

	switch req.Policy {
	case model.PolicyRolling:
		start := calendar.Date(req.Start)
		weeks := calendar.RequiredWeeks(len(req.Roster), req.Policy.GroupSize(), weeksPerBlock)
		if req.Weeks > 0 {
			weeks = req.Weeks
		}
		count := (weeks + weeksPerBlock - 1) / weeksPerBlock
		blocks, err := calendar.BlocksForCount(start, count, weeksPerBlock, blackout)
		return start, blocks, err

	case model.PolicyPool:
		start := calendar.Date(req.Start)
		year := req.Year
		if year == 0 {
			year = start.Year()
		}
		return start, calendar.BlocksForYear(start, year, weeksPerBlock, blackout), nil

	default:
		if req.Month < time.January || req.Month > time.December {
			return time.Time{}, nil, fmt.Errorf("%w: the monthly policy needs a start month", model.ErrInvalidInput)
		}
		start := calendar.MonthStart(req.Month, req.Year)
		count := calendar.RequiredWeeks(len(req.Roster), req.Policy.GroupSize(), weeksPerBlock) / weeksPerBlock
		blocks, err := calendar.BlocksForCount(start, count, weeksPerBlock, blackout)
		return start, blocks, err
	}
}

// buildRows flattens assignments into export rows: one per block for policies that export
// blocks, otherwise one per week
func buildRows(policy model.Policy, assignments []model.Assignment) []model.ScheduleRow {
	rows := make([]model.ScheduleRow, 0, len(assignments)*policy.WeeksPerBlock())
	for _, a := range assignments {
		names := a.Names()
		if policy.RowPerBlock() {
			rows = append(rows, model.ScheduleRow{Year: a.Block.Start().Year(), Week: a.Block.Label(), People: names})
			continue
		}
		for _, week := range a.Block.Weeks {
			rows = append(rows, model.ScheduleRow{Year: week.Start.Year(), Week: week.Label(), People: names})
		}
	}
	return rows
}

// outputNaming returns the filename suffix and backup stamp for the rota
func outputNaming(req ScheduleRequest, start time.Time) (string, string) {
	if req.Policy == model.PolicyMonthly {
		monthYear := fmt.Sprintf("%s%d", strings.ToLower(req.Month.String()), req.Year)
		return monthYear, monthYear
	}
	return start.Format(model.DateFormat), start.Format("20060102")
}

// convertBlackoutRules parses configured blackout rules into recurring calendar windows
func convertBlackoutRules(rules []config.BlackoutRule, logger *zap.Logger) ([]calendar.RecurringRule, error) {
	result := make([]calendar.RecurringRule, 0, len(rules))
	for i, rule := range rules {
		days := rule.Days
		if days == 0 {
			days = config.DefaultBlackoutDays
		}

		recurring, err := calendar.ParseRecurringRule(rule.RRule, days, rule.Label)
		if err != nil {
			return nil, fmt.Errorf("failed to parse blackout %d: %w", i, err)
		}
		result = append(result, recurring)

		logger.Debug("Converted blackout rule",
			zap.Int("index", i),
			zap.String("rrule", rule.RRule),
			zap.Int("days", days))
	}
	return result, nil
}
