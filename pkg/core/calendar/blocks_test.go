package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

func TestPartition_ExactBlocks(t *testing.T) {
	weeks := GenerateWeeks(date(2025, 2, 3), 6)

	blocks := Partition(weeks, 2)

	require.Len(t, blocks, 3)
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
		require.Len(t, b.Weeks, 2)
		assert.Equal(t, b.Weeks[0].Start.AddDate(0, 0, 7), b.Weeks[1].Start)
	}
	assert.Equal(t, date(2025, 2, 17), blocks[1].Start())
	assert.Equal(t, date(2025, 3, 2), blocks[1].End())
}

func TestPartition_DropsTrailingRemainder(t *testing.T) {
	weeks := GenerateWeeks(date(2025, 2, 3), 5)

	blocks := Partition(weeks, 2)

	require.Len(t, blocks, 2)
	assert.Equal(t, date(2025, 2, 24), blocks[1].Weeks[1].Start)
}

func TestPartition_SizeOne(t *testing.T) {
	weeks := GenerateWeeks(date(2025, 2, 3), 3)

	assert.Len(t, Partition(weeks, 1), 3)
}

func TestPartition_NeverSpansGap(t *testing.T) {
	weeks := []model.WeekRange{
		model.NewWeekRange(date(2025, 12, 1)),
		model.NewWeekRange(date(2026, 1, 12)),
		model.NewWeekRange(date(2026, 1, 19)),
	}

	blocks := Partition(weeks, 2)

	require.Len(t, blocks, 1)
	assert.Equal(t, date(2026, 1, 12), blocks[0].Start())
}

func TestPartition_FullYearBlockCount(t *testing.T) {
	filtered := Blackout{}.Filter(GenerateWeeksForYear(date(2025, 1, 6), 2025))

	blocks := Partition(filtered, 2)

	assert.Len(t, blocks, len(filtered)/2)
}

func TestBlocksForYear(t *testing.T) {
	blocks := BlocksForYear(date(2025, 1, 6), 2025, 2, Blackout{})

	require.Len(t, blocks, 24)
	assert.Equal(t, date(2025, 1, 6), blocks[0].Weeks[0].Start)
	assert.Equal(t, date(2025, 1, 13), blocks[0].Weeks[1].Start)
	assert.Equal(t, date(2025, 12, 7), blocks[23].End())
}

func TestBlocksForCount_TopsUpAfterBlackout(t *testing.T) {
	blocks, err := BlocksForCount(date(2025, 12, 1), 3, 2, Blackout{})
	require.NoError(t, err)

	require.Len(t, blocks, 3)
	assert.Equal(t, date(2025, 12, 1), blocks[0].Start())
	assert.Equal(t, date(2026, 1, 12), blocks[1].Start())
	assert.Equal(t, date(2026, 1, 26), blocks[2].Start())
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
	}
}

func TestBlocksForCount_TopUpSeesEarlierYears(t *testing.T) {
	// The top-up batch starting 5 Jan is filtered together with the December weeks,
	// so the window running to 6 Jan still applies to it
	blocks, err := BlocksForCount(date(2025, 12, 22), 1, 2, Blackout{})
	require.NoError(t, err)

	require.Len(t, blocks, 1)
	assert.Equal(t, date(2026, 1, 12), blocks[0].Start())
}

func TestBlocksForCount_NoBlackoutNeeded(t *testing.T) {
	blocks, err := BlocksForCount(date(2025, 3, 3), 4, 2, Blackout{})
	require.NoError(t, err)

	require.Len(t, blocks, 4)
	assert.Equal(t, date(2025, 4, 27), blocks[3].End())
}

func TestBlocksForCount_Zero(t *testing.T) {
	blocks, err := BlocksForCount(date(2025, 3, 3), 0, 2, Blackout{})
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
