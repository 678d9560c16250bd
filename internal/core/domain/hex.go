// Package domain defines the core entities shared by the engine, the hub,
// and the wire codec: board coordinates, occupancy, moves, turns, and
// results.
package domain

// HexIdx is an axial coordinate (q, r) identifying one of the 121 cells of
// the Sternhalma board.
type HexIdx struct {
	Q int `cbor:"q"`
	R int `cbor:"r"`
}

// NeighborOffsets lists the six axial neighbor directions in their
// canonical order. This order is observable: it determines the order step
// moves and jump directions are emitted in LegalMoves.
var NeighborOffsets = [6]HexIdx{
	{Q: 1, R: 0},
	{Q: -1, R: 0},
	{Q: 0, R: 1},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
	{Q: -1, R: 1},
}

// Add returns the coordinate reached by moving from h along o, scaled by k.
func (h HexIdx) Add(o HexIdx, k int) HexIdx {
	return HexIdx{Q: h.Q + o.Q*k, R: h.R + o.R*k}
}
