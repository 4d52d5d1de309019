package allocator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// allocateRolling shuffles the roster once and gives block b to order[b % len(order)].
// Every week of a block goes to the same person, so week i is covered by
// order[(i / weeksPerBlock) % len(order)] and the rota wraps around indefinitely.
func allocateRolling(config AllocationConfig) (*AllocationOutcome, error) {
	if len(config.Roster) == 0 {
		return nil, fmt.Errorf("%w: the rolling policy needs at least 1 person", model.ErrInsufficientRoster)
	}

	order := shuffled(config.Roster, config.Rand)
	config.Logger.Debug("Shuffled roster for rolling allocation", zap.Int("people", len(order)))

	assignments := make([]model.Assignment, len(config.Blocks))
	for i, block := range config.Blocks {
		assignments[i] = model.Assignment{
			Block:  block,
			People: []model.Person{order[i%len(order)]},
		}
	}

	if len(config.Blocks) > len(order) {
		config.Logger.Info("Rota wraps around the roster",
			zap.Int("blocks", len(config.Blocks)),
			zap.Int("people", len(order)))
	}

	return &AllocationOutcome{
		Assignments: assignments,
		Order:       order,
	}, nil
}
