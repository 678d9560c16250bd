package domain

// Occupancy is a total mapping from every valid board cell to its occupant.
// It is the hub's own state; nothing outside the hub and the move engine it
// calls should hold a live reference to one.
type Occupancy map[HexIdx]CellState

// NewInitialOccupancy returns the starting layout: 15 P1 pieces in P1's
// camp, 15 P2 pieces in P2's camp, every other valid cell empty.
func NewInitialOccupancy() Occupancy {
	occ := make(Occupancy, len(BoardCells))
	for _, h := range BoardCells {
		occ[h] = Empty
	}
	for _, h := range StartingRegion(P1) {
		occ[h] = OccP1
	}
	for _, h := range StartingRegion(P2) {
		occ[h] = OccP2
	}
	return occ
}

// Clone returns an independent copy.
func (o Occupancy) Clone() Occupancy {
	c := make(Occupancy, len(o))
	for h, s := range o {
		c[h] = s
	}
	return c
}

// CountIn returns how many of the given player's pieces sit in region.
func (o Occupancy) CountIn(p Player, region []HexIdx) int {
	want := StateFor(p)
	n := 0
	for _, h := range region {
		if o[h] == want {
			n++
		}
	}
	return n
}

// Apply moves the piece at start to end. The caller is responsible for
// validating the move against the current legal-move list first.
func (o Occupancy) Apply(m Movement) {
	o[m.End] = o[m.Start]
	o[m.Start] = Empty
}
