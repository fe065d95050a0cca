package xiangqi

// Destinations lists the squares p may legally move to on b. The result keeps
// the fixed direction order of each rule.
func Destinations(b *Board, p Piece) []Square {
	var dsts []Square
	genPseudo(b, p, &dsts)

	out := dsts[:0]
	for _, to := range dsts {
		if exposesGenerals(b, p, to) {
			continue
		}
		out = append(out, to)
	}
	return out
}

func genPseudo(b *Board, p Piece, dsts *[]Square) {
	switch p.Type {
	case PieceGeneral:
		genGeneralMoves(b, p, dsts)
	case PieceAdvisor:
		genAdvisorMoves(b, p, dsts)
	case PieceElephant:
		genElephantMoves(b, p, dsts)
	case PieceHorse:
		genHorseMoves(b, p, dsts)
	case PieceChariot:
		genChariotMoves(b, p, dsts)
	case PieceCannon:
		genCannonMoves(b, p, dsts)
	case PieceSoldier:
		genSoldierMoves(b, p, dsts)
	}
}

// LegalMoves 生成走子方全部合法走法：按棋盘行优先顺序遍历棋子，
// 每个棋子按其规则的固定方向顺序给出终点。顺序是确定的。
func LegalMoves(b *Board) []Move {
	moves := make([]Move, 0, 64)
	var dsts []Square
	for _, pc := range b.squares {
		if pc == nil || pc.Side != b.turn {
			continue
		}
		dsts = dsts[:0]
		genPseudo(b, *pc, &dsts)
		for _, to := range dsts {
			if exposesGenerals(b, *pc, to) {
				continue
			}
			moves = append(moves, Move{PieceID: pc.ID, From: pc.Pos, To: to})
		}
	}
	return moves
}

// IsLegal reports whether the side to move may move piece id to to.
func IsLegal(b *Board, id string, to Square) bool {
	pc, ok := b.pieces[id]
	if !ok || pc.Side != b.turn || !to.OnBoard() {
		return false
	}
	for _, d := range Destinations(b, *pc) {
		if d == to {
			return true
		}
	}
	return false
}

// exposesGenerals reports whether moving p to to would leave the two generals
// on one file with nothing between them. Capturing a general is never
// rejected: the game ends on that move.
func exposesGenerals(b *Board, p Piece, to Square) bool {
	red, black := b.generals[Red], b.generals[Black]
	if red == nil || black == nil {
		return false
	}
	if target := b.squares[to.Index()]; target != nil && target.Type == PieceGeneral {
		return false
	}

	rs, bs := red.Pos, black.Pos
	if p.Type == PieceGeneral {
		if p.Side == Red {
			rs = to
		} else {
			bs = to
		}
	}
	if rs.Col != bs.Col {
		return false
	}

	lo, hi := rs.Row, bs.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		sq := Square{Row: r, Col: rs.Col}
		if sq == to {
			return false
		}
		if sq == p.Pos {
			continue // 走开的格子
		}
		if b.squares[sq.Index()] != nil {
			return false
		}
	}
	return true
}
