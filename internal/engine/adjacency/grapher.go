// Package adjacency derives which tables are physically combinable from
// floor-plan layout data and checks connectivity of candidate combinations.
package adjacency

import (
	"math"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
)

// Logger is the logging surface the grapher needs.
type Logger interface {
	Warn(format string, v ...interface{})
}

// Grapher answers adjacency questions over a snapshot of table layouts.
// Tables without layout data are conservatively treated as not adjacent
// to anything unless another layout explicitly links to them.
type Grapher struct {
	layouts map[int64]*domain.TableLayout
	logger  Logger
}

// NewGrapher indexes the given layouts. Malformed layouts (negative
// extent) are logged and dropped rather than failing the request.
func NewGrapher(layouts []*domain.TableLayout, logger Logger) *Grapher {
	index := make(map[int64]*domain.TableLayout, len(layouts))
	for _, l := range layouts {
		if l == nil {
			continue
		}
		if !l.IsValid() {
			if logger != nil {
				logger.Warn("adjacency: layout for table id=%d is malformed, skipping", l.TableID)
			}
			continue
		}
		index[l.TableID] = l
	}
	return &Grapher{layouts: index, logger: logger}
}

// Adjacent reports whether two tables may be physically combined:
// their layout centers lie within the distance threshold, or one layout
// explicitly links to the other, or a layout carries the legacy
// is_connected flag.
func (g *Grapher) Adjacent(a, b domain.Table) bool {
	if a.ID == b.ID {
		return false
	}
	la := g.layouts[a.ID]
	lb := g.layouts[b.ID]

	if la != nil && la.ConnectedTo != nil && *la.ConnectedTo == b.ID {
		return true
	}
	if lb != nil && lb.ConnectedTo != nil && *lb.ConnectedTo == a.ID {
		return true
	}
	if (la != nil && la.IsConnected) || (lb != nil && lb.IsConnected) {
		return true
	}

	// Proximity requires layout data on both sides.
	if la == nil || lb == nil {
		return false
	}
	dx := la.CenterX() - lb.CenterX()
	dy := la.CenterY() - lb.CenterY()
	return math.Hypot(dx, dy) <= domain.AdjacencyThresholdUnits
}

// IsConnected reports whether the candidate set forms a single connected
// component of the adjacency graph restricted to it. Sets of zero or one
// table are trivially connected.
func (g *Grapher) IsConnected(tables []domain.Table) bool {
	if len(tables) <= 1 {
		return true
	}

	visited := make([]bool, len(tables))
	queue := []int{0}
	visited[0] = true
	seen := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := range tables {
			if visited[i] {
				continue
			}
			if g.Adjacent(tables[cur], tables[i]) {
				visited[i] = true
				seen++
				queue = append(queue, i)
			}
		}
	}

	return seen == len(tables)
}
