// Package optimizer searches for the table combination that seats a party
// with minimal wasted capacity.
package optimizer

import (
	"github.com/castlepub/reservation-system-sub000/internal/domain"
)

// ConnectivityChecker confirms a candidate set of tables is physically
// combinable. Implemented by the adjacency grapher.
type ConnectivityChecker interface {
	IsConnected(tables []domain.Table) bool
}

// tableCountWeight breaks score ties in favor of fewer tables without
// ever letting table count outweigh seat waste.
const tableCountWeight = 0.1

// Result is a chosen combination with its ranking score.
type Result struct {
	Tables []domain.Table
	Score  float64
}

// TotalCapacity returns the summed seating capacity of the result.
func (r *Result) TotalCapacity() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Capacity
	}
	return total
}

// Score ranks a combination: wasted seats plus a small per-table penalty.
func Score(totalCapacity, partySize, tableCount int) float64 {
	return float64(totalCapacity-partySize) + tableCountWeight*float64(tableCount)
}

// FindCombination picks the best single table or connected multi-table
// combination covering partySize. Candidates must already be filtered to
// open, non-conflicting tables; combinations draw only from combinable
// tables and are capped at domain.MaxCombinationTables members. Returns
// nil when nothing fits - the normal "no capacity" outcome, not an error.
//
// The result is deterministic for a fixed candidate ordering: the single-
// table path keeps the first-encountered smallest fit, and the subset
// search visits combinations in ascending size then lexicographic order,
// keeping the first minimum-score combination found.
func FindCombination(candidates []domain.Table, partySize int, checker ConnectivityChecker) *Result {
	if partySize <= 0 || len(candidates) == 0 {
		return nil
	}

	// Single-table fast path: smallest table that fits, first fit wins ties.
	if single := bestSingleTable(candidates, partySize); single != nil {
		return single
	}

	combinable := make([]domain.Table, 0, len(candidates))
	for _, t := range candidates {
		if t.Combinable {
			combinable = append(combinable, t)
		}
	}

	maxSize := domain.MaxCombinationTables
	if len(combinable) < maxSize {
		maxSize = len(combinable)
	}

	var best *Result
	combo := make([]domain.Table, 0, maxSize)

	var search func(start, remaining int, capacity int)
	search = func(start, remaining, capacity int) {
		if remaining == 0 {
			if capacity < partySize {
				return
			}
			if !checker.IsConnected(combo) {
				return
			}
			score := Score(capacity, partySize, len(combo))
			if best == nil || score < best.Score {
				chosen := make([]domain.Table, len(combo))
				copy(chosen, combo)
				best = &Result{Tables: chosen, Score: score}
			}
			return
		}
		for i := start; i <= len(combinable)-remaining; i++ {
			combo = append(combo, combinable[i])
			search(i+1, remaining-1, capacity+combinable[i].Capacity)
			combo = combo[:len(combo)-1]
		}
	}

	for size := 2; size <= maxSize; size++ {
		search(0, size, 0)
	}

	return best
}

func bestSingleTable(candidates []domain.Table, partySize int) *Result {
	var best *domain.Table
	for i := range candidates {
		t := &candidates[i]
		if !t.CanSeat(partySize) {
			continue
		}
		if best == nil || t.Capacity < best.Capacity {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	return &Result{
		Tables: []domain.Table{*best},
		Score:  Score(best.Capacity, partySize, 1),
	}
}
