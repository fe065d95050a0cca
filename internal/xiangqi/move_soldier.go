package xiangqi

// 兵：未过河只能前进一格；过河后可前进或左右一格；永不后退
func genSoldierMoves(b *Board, p Piece, dsts *[]Square) {
	row, col := p.Pos.Row, p.Pos.Col

	if r := row + soldierDir(p.Side); onBoard(r, col) {
		addIfAvailable(b, p.Side, r, col, dsts)
	}
	if !crossedRiver(p.Side, row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		if c := col + dc; onBoard(row, c) {
			addIfAvailable(b, p.Side, row, c, dsts)
		}
	}
}
