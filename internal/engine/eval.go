package engine

import "xiangqi/internal/xiangqi"

// 基础子力估值：帅 ≫ 车 > 炮 ≈ 马 > 相 = 士 > 兵
var pieceValue = [...]int{
	xiangqi.PieceNone:     0,
	xiangqi.PieceGeneral:  6000,
	xiangqi.PieceChariot:  600,
	xiangqi.PieceCannon:   285,
	xiangqi.PieceHorse:    270,
	xiangqi.PieceElephant: 120,
	xiangqi.PieceAdvisor:  120,
	xiangqi.PieceSoldier:  30,
}

// PieceValue is the material weight of a piece type.
func PieceValue(pt xiangqi.PieceType) int {
	if pt < 0 || int(pt) >= len(pieceValue) {
		return 0
	}
	return pieceValue[pt]
}

// Evaluate 从红方视角：正数红方好，负数黑方好。
// 所有位置分都按棋子自己一方的视角计算，所以镜像局面的分数正好取反。
func Evaluate(b *xiangqi.Board) int {
	score := 0
	b.Each(func(p xiangqi.Piece) {
		val := pieceValue[p.Type] + positionalBonus(p)
		if p.Side == xiangqi.Red {
			score += val
		} else {
			score -= val
		}
	})
	return score
}

// advance 返回从己方底线算起前进了几行（0..9）
func advance(side xiangqi.Side, row int) int {
	if side == xiangqi.Red {
		return xiangqi.Rows - 1 - row
	}
	return row
}

func positionalBonus(p xiangqi.Piece) int {
	adv := advance(p.Side, p.Pos.Row)
	switch p.Type {
	case xiangqi.PieceSoldier:
		return soldierBonus(adv, p.Pos.Col)
	case xiangqi.PieceHorse:
		// 边马
		if p.Pos.Col == 0 || p.Pos.Col == xiangqi.Cols-1 {
			return -10
		}
	case xiangqi.PieceCannon:
		// 中炮
		if p.Pos.Col == xiangqi.Cols/2 && adv < 5 {
			return 10
		}
	}
	return 0
}

func soldierBonus(adv, col int) int {
	b := 0
	if adv >= 5 {
		b += 40 // 过河兵
		if adv >= 7 && adv <= 8 && col >= 3 && col <= 5 {
			b += 10 // 逼近九宫
		}
	}
	if adv == xiangqi.Rows-1 {
		b -= 20 // 老兵
	}
	return b
}
