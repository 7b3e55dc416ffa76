package sample

import (
	"fmt"

	"randmodel/domain/core"
)

// DefaultSchedule is the prefix ladder the analysis pipeline walks.
// The final entry doubles as the required input length.
var DefaultSchedule = Schedule{10, 20, 50, 100, 200, 300}

// Schedule is a strictly ascending ladder of prefix lengths ending at
// the full sample size.
type Schedule []int

// Validate checks the ladder invariants: non-empty, strictly ascending,
// every entry at least MinSize.
func (sc Schedule) Validate() error {
	if len(sc) == 0 {
		return core.ErrInvalidSchedule
	}
	prev := 0
	for i, n := range sc {
		if n < MinSize {
			return fmt.Errorf("%w: entry %d is %d, below minimum %d", core.ErrInvalidSchedule, i, n, MinSize)
		}
		if n <= prev {
			return fmt.Errorf("%w: entry %d (%d) does not ascend past %d", core.ErrInvalidSchedule, i, n, prev)
		}
		prev = n
	}
	return nil
}

// Full returns the required full sample size, 0 for an empty schedule.
func (sc Schedule) Full() int {
	if len(sc) == 0 {
		return 0
	}
	return sc[len(sc)-1]
}

// Prefixes returns the partial lengths, everything before the full size.
func (sc Schedule) Prefixes() []int {
	if len(sc) == 0 {
		return nil
	}
	return sc[:len(sc)-1]
}
