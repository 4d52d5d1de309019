package allocator

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// AllocationConfig contains everything needed to assign people to blocks
type AllocationConfig struct {
	// Policy selects rolling-index (one person per block) or pool-consumption (groups)
	Policy model.Policy

	// Fallback decides how groups are formed once the pool runs low (pool policies only)
	Fallback model.FallbackPolicy

	// Roster is the list of people to assign. It is never modified.
	Roster []model.Person

	// Blocks to fill, in calendar order
	Blocks []model.Block

	// Rand is the source of all random decisions. Seed it for reproducible rotas.
	Rand *rand.Rand

	Logger *zap.Logger
}

// AllocationOutcome represents the result of an assignment run
type AllocationOutcome struct {
	// Assignments has one entry per block, in block order
	Assignments []model.Assignment

	// Order is the shuffled roster the assignments were drawn from
	Order []model.Person

	// FallbackBlocks lists the indices of blocks filled by the fallback policy
	FallbackBlocks []int

	// Unassigned lists people who were never assigned to any block
	Unassigned []model.Person
}

// Allocate assigns every block according to the configured policy
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	if config.Rand == nil {
		return nil, fmt.Errorf("allocation requires a random source")
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	roster := distinct(config.Roster)
	if dropped := len(config.Roster) - len(roster); dropped > 0 {
		config.Logger.Warn("Ignoring duplicate people in roster", zap.Int("duplicates", dropped))
	}
	config.Roster = roster

	var (
		outcome *AllocationOutcome
		err     error
	)
	switch config.Policy {
	case model.PolicyRolling:
		outcome, err = allocateRolling(config)
	case model.PolicyPool, model.PolicyMonthly:
		outcome, err = allocatePool(config)
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", model.ErrInvalidInput, config.Policy)
	}
	if err != nil {
		return nil, err
	}

	outcome.Unassigned = unassigned(config.Roster, outcome.Assignments)
	return outcome, nil
}

// shuffled returns a shuffled copy of the roster
func shuffled(roster []model.Person, rng *rand.Rand) []model.Person {
	order := slices.Clone(roster)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// sampleDistinct picks k distinct entries from people in random order
func sampleDistinct(people []model.Person, k int, rng *rand.Rand) []model.Person {
	if k <= 0 {
		return nil
	}
	perm := rng.Perm(len(people))
	sample := make([]model.Person, 0, k)
	for _, idx := range perm[:min(k, len(perm))] {
		sample = append(sample, people[idx])
	}
	return sample
}

// distinct returns people with repeated entries removed, keeping first occurrences
func distinct(people []model.Person) []model.Person {
	result := make([]model.Person, 0, len(people))
	for _, p := range people {
		if !slices.Contains(result, p) {
			result = append(result, p)
		}
	}
	return result
}

func unassigned(roster []model.Person, assignments []model.Assignment) []model.Person {
	seen := make(map[model.Person]bool)
	for _, a := range assignments {
		for _, p := range a.People {
			seen[p] = true
		}
	}

	var missing []model.Person
	for _, p := range roster {
		if !seen[p] {
			missing = append(missing, p)
		}
	}
	return missing
}
