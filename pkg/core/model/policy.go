package model

import "fmt"

// Policy selects one of the supported scheduling variants
type Policy string

const (
	// PolicyRolling assigns one person per two-week block, cycling through a shuffled roster
	PolicyRolling Policy = "rolling"
	// PolicyPool assigns three people per two-week block for the rest of a calendar year
	PolicyPool Policy = "pool"
	// PolicyMonthly assigns three people per two-week block starting on the first Monday of a month
	PolicyMonthly Policy = "monthly"
)

// Policies lists every supported policy in display order
var Policies = []Policy{PolicyRolling, PolicyPool, PolicyMonthly}

func (p Policy) IsValid() bool {
	return p == PolicyRolling || p == PolicyPool || p == PolicyMonthly
}

// GroupSize is the number of people assigned to each block
func (p Policy) GroupSize() int {
	if p == PolicyRolling {
		return 1
	}
	return 3
}

// WeeksPerBlock is the number of consecutive weeks in each block
func (p Policy) WeeksPerBlock() int {
	return 2
}

// RowPerBlock reports whether the export has one row per block instead of one per week
func (p Policy) RowPerBlock() bool {
	return p == PolicyMonthly
}

// Columns returns the header row of the exported schedule
func (p Policy) Columns() []string {
	switch p {
	case PolicyRolling:
		return []string{"Year", "Week", "Person"}
	case PolicyMonthly:
		return []string{"Week", "Assigned"}
	default:
		columns := []string{"Week"}
		for i := 0; i < p.GroupSize(); i++ {
			columns = append(columns, fmt.Sprintf("Person %d", i+1))
		}
		return columns
	}
}

// DefaultFallback is the fallback used when none is configured.
// Each variant keeps the behaviour it has always had.
func (p Policy) DefaultFallback() FallbackPolicy {
	if p == PolicyMonthly {
		return FallbackRepeatPrevious
	}
	return FallbackResampleAssigned
}

// ParsePolicy converts a policy name into a Policy
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown policy %q (expected one of %v)", ErrInvalidInput, s, Policies)
	}
	return p, nil
}

// FallbackPolicy decides how a group is formed once fewer than a full group remain in the pool
type FallbackPolicy string

const (
	// FallbackResampleAssigned samples a full group from everyone already assigned
	FallbackResampleAssigned FallbackPolicy = "resample-assigned"
	// FallbackRepeatPrevious samples a full group from the previous block's group
	FallbackRepeatPrevious FallbackPolicy = "repeat-previous"
	// FallbackTopUp assigns whoever is left in the pool and fills the gap from already assigned people
	FallbackTopUp FallbackPolicy = "top-up"
)

// FallbackPolicies lists every supported fallback
var FallbackPolicies = []FallbackPolicy{FallbackResampleAssigned, FallbackRepeatPrevious, FallbackTopUp}

func (f FallbackPolicy) IsValid() bool {
	return f == FallbackResampleAssigned || f == FallbackRepeatPrevious || f == FallbackTopUp
}

// ParseFallbackPolicy converts a fallback name into a FallbackPolicy
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	f := FallbackPolicy(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown fallback %q (expected one of %v)", ErrInvalidInput, s, FallbackPolicies)
	}
	return f, nil
}
