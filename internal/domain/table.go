package domain

// Room represents a bookable area of the venue owning a set of tables.
type Room struct {
	ID     int64
	Name   string
	Active bool
}

// Table represents a physical table in a room.
// Capacity 0 denotes a non-seated fixture such as a bar top.
type Table struct {
	ID             int64
	RoomID         int64
	Name           string
	Capacity       int
	Combinable     bool
	Active         bool
	PublicBookable bool
}

// CanSeat returns true if the table alone covers the party size.
func (t *Table) CanSeat(partySize int) bool {
	return t.Capacity >= partySize
}

// TableLayout holds the floor-plan geometry of a table. Layouts are
// optional; a table without one carries no spatial information and never
// forms automatic adjacency.
type TableLayout struct {
	TableID     int64
	PosX        float64
	PosY        float64
	Width       float64
	Height      float64
	ConnectedTo *int64 // explicit link to another table's layout
	IsConnected bool
}

// CenterX returns the horizontal center of the table's footprint.
func (l *TableLayout) CenterX() float64 {
	return l.PosX + l.Width/2
}

// CenterY returns the vertical center of the table's footprint.
func (l *TableLayout) CenterY() float64 {
	return l.PosY + l.Height/2
}

// IsValid reports whether the layout geometry is well-formed.
// Malformed layouts are skipped, not fatal: one corrupt record must not
// make the whole room unbookable.
func (l *TableLayout) IsValid() bool {
	return l.Width >= 0 && l.Height >= 0
}
