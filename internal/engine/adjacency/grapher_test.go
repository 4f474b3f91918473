package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func table(id int64) domain.Table {
	return domain.Table{ID: id, RoomID: 1, Capacity: 4, Combinable: true, Active: true}
}

func layout(tableID int64, x, y float64) *domain.TableLayout {
	return &domain.TableLayout{TableID: tableID, PosX: x, PosY: y, Width: 100, Height: 100}
}

func TestAdjacentByProximity(t *testing.T) {
	g := NewGrapher([]*domain.TableLayout{
		layout(1, 0, 0),
		layout(2, 100, 0), // centers 100 apart
		layout(3, 500, 0), // centers 500 apart from table 1
	}, nopLogger{})

	assert.True(t, g.Adjacent(table(1), table(2)))
	assert.True(t, g.Adjacent(table(2), table(1)), "adjacency is symmetric")
	assert.False(t, g.Adjacent(table(1), table(3)))
}

func TestAdjacentAtExactThreshold(t *testing.T) {
	g := NewGrapher([]*domain.TableLayout{
		layout(1, 0, 0),
		layout(2, 150, 0), // centers exactly 150 apart
	}, nopLogger{})

	assert.True(t, g.Adjacent(table(1), table(2)), "threshold is inclusive")
}

func TestAdjacentByExplicitLink(t *testing.T) {
	far := layout(1, 0, 0)
	far.ConnectedTo = ptr.Ptr(int64(2))

	g := NewGrapher([]*domain.TableLayout{
		far,
		layout(2, 1000, 1000),
	}, nopLogger{})

	assert.True(t, g.Adjacent(table(1), table(2)))
	assert.True(t, g.Adjacent(table(2), table(1)))
}

func TestAdjacentByConnectedFlag(t *testing.T) {
	flagged := layout(1, 0, 0)
	flagged.IsConnected = true

	g := NewGrapher([]*domain.TableLayout{
		flagged,
		layout(2, 1000, 1000),
	}, nopLogger{})

	assert.True(t, g.Adjacent(table(1), table(2)))
}

func TestMissingLayoutIsNotAdjacent(t *testing.T) {
	g := NewGrapher([]*domain.TableLayout{layout(1, 0, 0)}, nopLogger{})

	// Table 2 has no layout: no automatic adjacency.
	assert.False(t, g.Adjacent(table(1), table(2)))

	// Unless a layout explicitly links to it.
	linked := layout(1, 0, 0)
	linked.ConnectedTo = ptr.Ptr(int64(2))
	g2 := NewGrapher([]*domain.TableLayout{linked}, nopLogger{})
	assert.True(t, g2.Adjacent(table(1), table(2)))
}

func TestMalformedLayoutIsSkipped(t *testing.T) {
	bad := layout(1, 0, 0)
	bad.Width = -10

	g := NewGrapher([]*domain.TableLayout{bad, layout(2, 0, 0)}, nopLogger{})

	// Table 1's layout was dropped, so only explicit links could connect it.
	assert.False(t, g.Adjacent(table(1), table(2)))
}

func TestIsConnected(t *testing.T) {
	g := NewGrapher([]*domain.TableLayout{
		layout(1, 0, 0),
		layout(2, 100, 0),
		layout(3, 200, 0),
		layout(4, 1000, 1000),
	}, nopLogger{})

	t.Run("empty and single sets are trivially connected", func(t *testing.T) {
		assert.True(t, g.IsConnected(nil))
		assert.True(t, g.IsConnected([]domain.Table{table(1)}))
	})

	t.Run("chain is connected", func(t *testing.T) {
		// 1-2 and 2-3 are adjacent; 1-3 only through 2.
		assert.True(t, g.IsConnected([]domain.Table{table(1), table(2), table(3)}))
	})

	t.Run("isolated member breaks connectivity", func(t *testing.T) {
		assert.False(t, g.IsConnected([]domain.Table{table(1), table(2), table(4)}))
	})

	t.Run("two distant tables are not connected", func(t *testing.T) {
		assert.False(t, g.IsConnected([]domain.Table{table(1), table(4)}))
	})
}
