package xiangqi

// 标准开局：黑方在上（0-3 行），红方在下（6-9 行），红先
const StartFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

// NewGame returns the standard 32-piece starting position. Every piece goes
// through Place, so a layout that reused an id or a square would fail loudly
// here instead of silently dropping a piece.
func NewGame() *Board {
	b, err := DecodePosition(StartFEN)
	if err != nil {
		panic("start position: " + err.Error())
	}
	return b
}
