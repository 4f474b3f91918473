package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
)

// allConnected treats every candidate set as physically combinable.
type allConnected struct{}

func (allConnected) IsConnected([]domain.Table) bool { return true }

// noneConnected rejects every multi-table set.
type noneConnected struct{}

func (noneConnected) IsConnected(tables []domain.Table) bool { return len(tables) <= 1 }

// pairConnected connects only explicitly listed pairs.
type pairConnected map[[2]int64]bool

func (p pairConnected) IsConnected(tables []domain.Table) bool {
	if len(tables) <= 1 {
		return true
	}
	// Connectivity via BFS over the allowed pairs.
	adj := func(a, b domain.Table) bool {
		return p[[2]int64{a.ID, b.ID}] || p[[2]int64{b.ID, a.ID}]
	}
	visited := map[int64]bool{tables[0].ID: true}
	queue := []domain.Table{tables[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range tables {
			if !visited[t.ID] && adj(cur, t) {
				visited[t.ID] = true
				queue = append(queue, t)
			}
		}
	}
	return len(visited) == len(tables)
}

func tbl(id int64, capacity int, combinable bool) domain.Table {
	return domain.Table{ID: id, RoomID: 1, Capacity: capacity, Combinable: combinable, Active: true, PublicBookable: true}
}

func ids(r *Result) []int64 {
	out := make([]int64, len(r.Tables))
	for i, t := range r.Tables {
		out[i] = t.ID
	}
	return out
}

func TestSingleTableFastPath(t *testing.T) {
	t.Run("smallest fitting table wins", func(t *testing.T) {
		r := FindCombination([]domain.Table{
			tbl(1, 8, true),
			tbl(2, 4, true),
			tbl(3, 6, true),
		}, 4, allConnected{})
		require.NotNil(t, r)
		assert.Equal(t, []int64{2}, ids(r))
		assert.InDelta(t, 0.1, r.Score, 1e-9)
	})

	t.Run("ties keep encounter order", func(t *testing.T) {
		r := FindCombination([]domain.Table{
			tbl(7, 4, true),
			tbl(2, 4, true),
		}, 3, allConnected{})
		require.NotNil(t, r)
		assert.Equal(t, []int64{7}, ids(r))
	})

	t.Run("non-combinable table can serve alone", func(t *testing.T) {
		r := FindCombination([]domain.Table{tbl(1, 6, false)}, 5, allConnected{})
		require.NotNil(t, r)
		assert.Equal(t, []int64{1}, ids(r))
	})

	t.Run("single table beats any combination", func(t *testing.T) {
		// A 2+4 combination would waste nothing, but the fast path prefers
		// the single 8-seater.
		r := FindCombination([]domain.Table{
			tbl(1, 2, true),
			tbl(2, 4, true),
			tbl(3, 8, true),
		}, 6, allConnected{})
		require.NotNil(t, r)
		assert.Equal(t, []int64{3}, ids(r))
	})
}

func TestCombinationSearch(t *testing.T) {
	t.Run("two adjacent tables cover the party exactly", func(t *testing.T) {
		r := FindCombination([]domain.Table{
			tbl(1, 2, true),
			tbl(2, 4, true),
		}, 6, allConnected{})
		require.NotNil(t, r)
		assert.ElementsMatch(t, []int64{1, 2}, ids(r))
		assert.InDelta(t, 0.2, r.Score, 1e-9)
	})

	t.Run("minimum waste wins", func(t *testing.T) {
		r := FindCombination([]domain.Table{
			tbl(1, 4, true),
			tbl(2, 8, true),
			tbl(3, 2, true),
		}, 6, allConnected{})
		require.NotNil(t, r)
		// 4+2 = 6 seats, zero waste; 4+8 and 2+8 waste more.
		assert.ElementsMatch(t, []int64{1, 3}, ids(r))
	})

	t.Run("seat waste dominates table count", func(t *testing.T) {
		// Three tables wasting 1 seat beat two tables wasting 5.
		r := FindCombination([]domain.Table{
			tbl(1, 5, true),
			tbl(2, 10, true),
			tbl(3, 4, true),
			tbl(4, 7, true),
		}, 15, allConnected{})
		require.NotNil(t, r)
		// 5+4+7 = 16 -> score 1.3; 5+10 = 15 -> score 0.2 wins instead.
		assert.ElementsMatch(t, []int64{1, 2}, ids(r))
		assert.InDelta(t, 0.2, r.Score, 1e-9)

		r = FindCombination([]domain.Table{
			tbl(1, 5, true),
			tbl(2, 14, true),
			tbl(3, 4, true),
			tbl(4, 7, true),
		}, 15, allConnected{})
		require.NotNil(t, r)
		// 5+14 = 19 -> score 4.1; 5+4+7 = 16 -> score 1.3 wins.
		assert.ElementsMatch(t, []int64{1, 3, 4}, ids(r))
	})

	t.Run("disconnected combinations are never returned", func(t *testing.T) {
		r := FindCombination([]domain.Table{
			tbl(1, 2, true),
			tbl(2, 4, true),
		}, 6, noneConnected{})
		assert.Nil(t, r)
	})

	t.Run("connectivity is per candidate subset", func(t *testing.T) {
		conn := pairConnected{
			{1, 2}: true,
			{2, 3}: true,
		}
		// 1+3 alone has capacity but no adjacency; 1+2+3 is a chain.
		r := FindCombination([]domain.Table{
			tbl(1, 4, true),
			tbl(2, 2, true),
			tbl(3, 4, true),
		}, 8, conn)
		require.NotNil(t, r)
		assert.ElementsMatch(t, []int64{1, 2, 3}, ids(r))
	})

	t.Run("non-combinable tables are excluded from combinations", func(t *testing.T) {
		r := FindCombination([]domain.Table{
			tbl(1, 4, false),
			tbl(2, 4, true),
		}, 8, allConnected{})
		assert.Nil(t, r)
	})

	t.Run("combination size is capped", func(t *testing.T) {
		// Seven two-seaters cannot cover 14 within the six-table cap.
		candidates := make([]domain.Table, 7)
		for i := range candidates {
			candidates[i] = tbl(int64(i+1), 2, true)
		}
		assert.Nil(t, FindCombination(candidates, 14, allConnected{}))

		// Twelve is reachable with six tables.
		r := FindCombination(candidates, 12, allConnected{})
		require.NotNil(t, r)
		assert.Len(t, r.Tables, 6)
	})
}

func TestNoCapacity(t *testing.T) {
	assert.Nil(t, FindCombination(nil, 4, allConnected{}))
	assert.Nil(t, FindCombination([]domain.Table{tbl(1, 2, true)}, 4, allConnected{}))
	assert.Nil(t, FindCombination([]domain.Table{tbl(1, 2, true)}, 0, allConnected{}))
}

func TestMinimalityExhaustive(t *testing.T) {
	// Cross-check the returned score against a brute-force enumeration.
	candidates := []domain.Table{
		tbl(1, 2, true),
		tbl(2, 3, true),
		tbl(3, 4, true),
		tbl(4, 6, true),
		tbl(5, 5, true),
	}
	partySize := 9

	r := FindCombination(candidates, partySize, allConnected{})
	require.NotNil(t, r)

	bestScore := bruteForceBestScore(candidates, partySize)
	assert.InDelta(t, bestScore, r.Score, 1e-9)
}

func bruteForceBestScore(candidates []domain.Table, partySize int) float64 {
	best := -1.0
	n := len(candidates)
	for mask := 1; mask < 1<<n; mask++ {
		capacity, count := 0, 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				capacity += candidates[i].Capacity
				count++
			}
		}
		if count > 1 {
			// Multi-table sets draw from combinable tables only.
			allCombinable := true
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 && !candidates[i].Combinable {
					allCombinable = false
				}
			}
			if !allCombinable {
				continue
			}
		}
		if count > domain.MaxCombinationTables || capacity < partySize {
			continue
		}
		score := Score(capacity, partySize, count)
		if best < 0 || score < best {
			best = score
		}
	}
	return best
}
