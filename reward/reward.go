// Package reward computes the gold yield of a dungeon run from the
// dungeon's configured income rates and the run's mode and completion
// state. Pure computation, no I/O.
package reward

import (
	"math"

	"github.com/kaiyue77/arkledger/domain"
)

// soloFactor is the fraction of the group income paid for solo clears.
// One canonical rule for both create and update paths.
const soloFactor = 0.6

// Compute returns the rewards for one run. Incomplete or unrewarded runs
// yield zero. Solo clears pay 60% of the group income per component,
// rounded half away from zero; group clears pay the configured rates.
func Compute(d domain.Dungeon, isSolo, isCompleted, hasReward bool) domain.Rewards {
	if !isCompleted || !hasReward {
		return domain.Rewards{}
	}

	bound := d.BoundGoldIncome
	tradeable := d.TradeableGoldIncome
	if isSolo {
		bound = roundHalfAway(float64(bound) * soloFactor)
		tradeable = roundHalfAway(float64(tradeable) * soloFactor)
	}

	return domain.Rewards{
		Bound:     bound,
		Tradeable: tradeable,
		Total:     bound + tradeable,
	}
}

func roundHalfAway(v float64) int {
	return int(math.Round(v))
}
