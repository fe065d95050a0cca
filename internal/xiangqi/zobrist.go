package xiangqi

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces [2][numPieceTypes][NumSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for pt := 1; pt < numPieceTypes; pt++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][pt][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(side Side, pt PieceType, sq int) uint64 {
	if side != Red && side != Black || pt <= PieceNone || pt >= numPieceTypes {
		return 0
	}
	if sq < 0 || sq >= NumSquares {
		return 0
	}
	return zobristPieces[side][pt][sq]
}

// computeHash 全量计算当前局面的 Zobrist 哈希，增量结果必须与之一致。
func (b *Board) computeHash() uint64 {
	initZobrist()

	var h uint64
	for sq, pc := range b.squares {
		if pc == nil {
			continue
		}
		h ^= pieceHashKey(pc.Side, pc.Type, sq)
	}
	if b.turn == Black {
		h ^= zobristSide
	}
	return h
}
