package domain

// The 121-cell board and the six star-point tips (one per vertex of
// the hexagram; only two opposite tips serve as starting/goal regions for a
// two-player game) are generated once from the hexagon's six-fold rotational
// symmetry rather than hand-transcribed, since the six direction vectors and
// the corner/point relationship make the generator itself the simplest
// faithful record of the layout. A production deployment would instead load
// this table from a static asset; here it is built once at package init and
// treated as read-only data from that point on.

// dir lists the six unit steps in angular order, 60° apart; dir[i+3] is the
// antipodal direction of dir[i].
var dir = [6]HexIdx{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

const hexRadius = 4 // radius of the central hexagonal core

func scale(h HexIdx, k int) HexIdx { return HexIdx{Q: h.Q * k, R: h.R * k} }
func sub(a, b HexIdx) HexIdx       { return HexIdx{Q: a.Q - b.Q, R: a.R - b.R} }
func add2(a, b HexIdx) HexIdx      { return HexIdx{Q: a.Q + b.Q, R: a.R + b.R} }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// corner returns the i-th outer vertex of the hexagonal core.
func corner(i int) HexIdx { return scale(dir[i], hexRadius) }

// point builds the 10-cell triangular tip attached beyond corner i, using
// the two directions flanking dir[i] as the tip's spreading edges.
func point(i int) []HexIdx {
	apex := add2(corner(i), dir[i])
	flankA := dir[(i+1)%6]
	flankB := dir[(i+5)%6]
	cells := make([]HexIdx, 0, 10)
	for a := 0; a <= 3; a++ {
		for b := 0; b <= 3-a; b++ {
			cells = append(cells, add2(apex, add2(scale(flankA, a), scale(flankB, b))))
		}
	}
	return cells
}

// frontRow returns the 5 core cells nearest to corner i — the part of the
// hexagonal core a player's camp spills into, matching traditional two-player
// Sternhalma play where a 15-piece camp fills a point plus its front row.
func frontRow(i int) []HexIdx {
	c := corner(i)
	flankA := dir[(i+1)%6]
	flankB := dir[(i+5)%6]
	return []HexIdx{
		c,
		sub(c, dir[i]),
		sub(add2(c, flankA), dir[i]),
		sub(add2(c, flankB), dir[i]),
		sub(c, scale(dir[i], 2)),
	}
}

// BoardCells is the complete, ordered, deduplicated set of 121 valid cells:
// the hexagonal core (61 cells) plus all six 10-cell tips (60 cells), in the
// canonical enumeration order used throughout move generation.
var BoardCells []HexIdx

// startRegions[0] is P1's starting / P2's goal region; startRegions[1] is
// P2's starting / P1's goal region — the two tips attached to antipodal
// corners 0 and 3.
var startRegions [2][]HexIdx

func init() {
	seen := make(map[HexIdx]bool, 121)
	add := func(h HexIdx) {
		if !seen[h] {
			seen[h] = true
			BoardCells = append(BoardCells, h)
		}
	}

	for q := -hexRadius; q <= hexRadius; q++ {
		rMin := maxInt(-hexRadius, -q-hexRadius)
		rMax := minInt(hexRadius, -q+hexRadius)
		for r := rMin; r <= rMax; r++ {
			add(HexIdx{Q: q, R: r})
		}
	}
	for i := 0; i < 6; i++ {
		for _, c := range point(i) {
			add(c)
		}
	}

	startRegions[0] = append(append([]HexIdx{}, point(0)...), frontRow(0)...)
	startRegions[1] = append(append([]HexIdx{}, point(3)...), frontRow(3)...)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// StartingRegion returns the 15-cell camp a player begins in. Region(P1) is
// Region(P2)'s goal and vice versa.
func StartingRegion(p Player) []HexIdx {
	if p == P1 {
		return startRegions[0]
	}
	return startRegions[1]
}

// GoalRegion returns the 15-cell camp a player must fill to win.
func GoalRegion(p Player) []HexIdx {
	return StartingRegion(p.Opponent())
}
