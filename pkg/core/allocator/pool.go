package allocator

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// poolState tracks a working copy of the roster as groups are drawn from it
type poolState struct {
	// remaining people not yet drawn, drawn from the end
	remaining []model.Person

	// assigned holds every distinct person drawn so far, in draw order
	assigned []model.Person

	// previous is the group of the last filled block
	previous []model.Person
}

// draw removes size people from the end of the pool
func (s *poolState) draw(size int) []model.Person {
	group := make([]model.Person, 0, size)
	for i := 0; i < size; i++ {
		last := len(s.remaining) - 1
		group = append(group, s.remaining[last])
		s.remaining = s.remaining[:last]
	}
	return group
}

// record marks the members of group as assigned
func (s *poolState) record(group []model.Person) {
	for _, p := range group {
		if !slices.Contains(s.assigned, p) {
			s.assigned = append(s.assigned, p)
		}
	}
	s.previous = group
}

// allocatePool draws a full group for each block from a shuffled working copy of the roster.
// Once fewer than a full group remain, the configured fallback forms the group instead, so
// some people serve more than once.
func allocatePool(config AllocationConfig) (*AllocationOutcome, error) {
	size := config.Policy.GroupSize()
	if len(config.Roster) < size {
		return nil, fmt.Errorf("%w: the %s policy needs at least %d people, got %d",
			model.ErrInsufficientRoster, config.Policy, size, len(config.Roster))
	}

	fallback := config.Fallback
	if fallback == "" {
		fallback = config.Policy.DefaultFallback()
	}
	if !fallback.IsValid() {
		return nil, fmt.Errorf("%w: unknown fallback %q", model.ErrInvalidInput, fallback)
	}

	order := shuffled(config.Roster, config.Rand)
	state := &poolState{remaining: slices.Clone(order)}
	outcome := &AllocationOutcome{
		Assignments: make([]model.Assignment, 0, len(config.Blocks)),
		Order:       order,
	}

	for _, block := range config.Blocks {
		var group []model.Person
		if len(state.remaining) >= size {
			group = state.draw(size)
		} else {
			group = fallbackGroup(config, state, fallback, size)
			outcome.FallbackBlocks = append(outcome.FallbackBlocks, block.Index)
			config.Logger.Debug("Filled block with fallback group",
				zap.Int("block", block.Index),
				zap.String("fallback", string(fallback)),
				zap.Int("remaining_in_pool", len(state.remaining)))
		}

		state.record(group)
		outcome.Assignments = append(outcome.Assignments, model.Assignment{Block: block, People: group})
	}

	if len(outcome.FallbackBlocks) > 0 {
		config.Logger.Info("Roster exhausted before all blocks were filled",
			zap.Int("fallback_blocks", len(outcome.FallbackBlocks)),
			zap.String("fallback", string(fallback)))
	}

	return outcome, nil
}

// fallbackGroup forms a group of size distinct people when the pool cannot supply one
func fallbackGroup(config AllocationConfig, state *poolState, fallback model.FallbackPolicy, size int) []model.Person {
	switch fallback {
	case model.FallbackRepeatPrevious:
		return sampleDistinct(state.previous, size, config.Rand)
	case model.FallbackTopUp:
		group := state.draw(len(state.remaining))
		candidates := make([]model.Person, 0, len(state.assigned))
		for _, p := range state.assigned {
			if !slices.Contains(group, p) {
				candidates = append(candidates, p)
			}
		}
		return append(group, sampleDistinct(candidates, size-len(group), config.Rand)...)
	default:
		return sampleDistinct(state.assigned, size, config.Rand)
	}
}
