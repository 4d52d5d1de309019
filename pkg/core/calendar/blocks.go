package calendar

import (
	"fmt"
	"time"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// maxTopUpWeeks bounds how far past the requested horizon BlocksForCount keeps looking
// for schedulable weeks (ten years)
const maxTopUpWeeks = 520

// Partition groups consecutive weeks into blocks of exactly size weeks.
// Weeks are consecutive only if each starts 7 days after the previous one, so a block never
// spans a blackout gap. A remainder shorter than size, whether at the end or before a gap,
// is dropped.
func Partition(weeks []model.WeekRange, size int) []model.Block {
	if size <= 0 {
		return nil
	}

	var blocks []model.Block
	var current []model.WeekRange
	for _, w := range weeks {
		if len(current) > 0 && !current[len(current)-1].Start.AddDate(0, 0, 7).Equal(w.Start) {
			current = nil
		}
		current = append(current, w)
		if len(current) == size {
			blocks = append(blocks, model.Block{Index: len(blocks), Weeks: current})
			current = nil
		}
	}
	return blocks
}

// BlocksForYear generates the weeks of year from start, removes blacked out weeks and
// partitions the rest into blocks
func BlocksForYear(start time.Time, year, weeksPerBlock int, blackout Blackout) []model.Block {
	weeks := GenerateWeeksForYear(start, year)
	return Partition(blackout.Filter(weeks), weeksPerBlock)
}

// BlocksForCount returns exactly count blocks starting at start. When blacked out weeks
// leave too few blocks, generation continues after the last generated week. The blackout is
// applied to the whole generated horizon, so the Christmas windows are those of every year
// it touches.
func BlocksForCount(start time.Time, count, weeksPerBlock int, blackout Blackout) ([]model.Block, error) {
	if count <= 0 {
		return nil, nil
	}

	var generated []model.WeekRange
	next := Date(start)
	need := count * weeksPerBlock

	for {
		batch := GenerateWeeks(next, need)
		generated = append(generated, batch...)
		next = batch[len(batch)-1].Start.AddDate(0, 0, 7)

		blocks := Partition(blackout.Filter(generated), weeksPerBlock)
		if len(blocks) >= count {
			return blocks[:count], nil
		}

		if len(generated) > count*weeksPerBlock+maxTopUpWeeks {
			return nil, fmt.Errorf("%w: blackout windows leave only %d of %d blocks schedulable", model.ErrInvalidInput, len(blocks), count)
		}
		need = (count - len(blocks)) * weeksPerBlock
	}
}
