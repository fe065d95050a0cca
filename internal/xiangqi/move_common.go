package xiangqi

var (
	orthogonalDirs = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	diagonalDirs   = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// addIfAvailable appends (row, col) when it is empty or holds an opponent.
func addIfAvailable(b *Board, side Side, row, col int, dsts *[]Square) {
	dst := b.squares[indexOf(row, col)]
	if dst == nil || dst.Side != side {
		*dsts = append(*dsts, Square{Row: row, Col: col})
	}
}

// 车：横竖任意格，遇子即停，可吃敌子
func genChariotMoves(b *Board, p Piece, dsts *[]Square) {
	for _, d := range orthogonalDirs {
		r, c := p.Pos.Row+d[0], p.Pos.Col+d[1]
		for onBoard(r, c) {
			pc := b.squares[indexOf(r, c)]
			if pc == nil {
				*dsts = append(*dsts, Square{Row: r, Col: c})
			} else {
				if pc.Side != p.Side {
					*dsts = append(*dsts, Square{Row: r, Col: c})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：不吃子时同车；吃子必须隔一个炮架
func genCannonMoves(b *Board, p Piece, dsts *[]Square) {
	for _, d := range orthogonalDirs {
		r, c := p.Pos.Row+d[0], p.Pos.Col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(r, c) {
			if b.squares[indexOf(r, c)] != nil {
				break
			}
			*dsts = append(*dsts, Square{Row: r, Col: c})
			r += d[0]
			c += d[1]
		}
		r += d[0]
		c += d[1]

		// 吃子阶段：越过炮架后遇到的第一个子
		for onBoard(r, c) {
			pc := b.squares[indexOf(r, c)]
			if pc != nil {
				if pc.Side != p.Side {
					*dsts = append(*dsts, Square{Row: r, Col: c})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func genElephantMoves(b *Board, p Piece, dsts *[]Square) {
	for _, d := range diagonalDirs {
		r := p.Pos.Row + 2*d[0]
		c := p.Pos.Col + 2*d[1]
		if !onBoard(r, c) || crossedRiver(p.Side, r) {
			continue
		}
		if b.squares[indexOf(p.Pos.Row+d[0], p.Pos.Col+d[1])] != nil {
			continue
		}
		addIfAvailable(b, p.Side, r, c, dsts)
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(b *Board, p Piece, dsts *[]Square) {
	for _, d := range diagonalDirs {
		r := p.Pos.Row + d[0]
		c := p.Pos.Col + d[1]
		if !inPalace(p.Side, r, c) {
			continue
		}
		addIfAvailable(b, p.Side, r, c, dsts)
	}
}

// 将：九宫内上下左右一格；对脸由 Destinations 统一过滤
func genGeneralMoves(b *Board, p Piece, dsts *[]Square) {
	for _, d := range orthogonalDirs {
		r := p.Pos.Row + d[0]
		c := p.Pos.Col + d[1]
		if !inPalace(p.Side, r, c) {
			continue
		}
		addIfAvailable(b, p.Side, r, c, dsts)
	}
}
