// Package strategies holds the shared types of the rate limiting
// algorithms. The algorithm implementations live in subpackages.
package strategies

import "time"

// Result describes the admission outlook of a single strategy at one instant.
type Result struct {
	Allowed    bool          // whether one request would be admitted now
	Remaining  int           // full admissions left before the strategy blocks
	RetryAfter time.Duration // wait until the next admission frees up
}

// Results maps strategy names to their individual outcomes.
type Results map[string]Result
