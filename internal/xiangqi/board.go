package xiangqi

import (
	"errors"
	"fmt"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// rows 0..4 belong to black, 5..9 to red
	riverRow = 5
)

var (
	ErrOccupiedSquare = errors.New("square already occupied")
	ErrDuplicatePiece = errors.New("duplicate piece")
	ErrOffBoard       = errors.New("square off board")
	ErrIllegalMove    = errors.New("illegal move")
	ErrInvalidPiece   = errors.New("invalid piece")
)

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func indexOf(row, col int) int { return row*Cols + col }

// 九宫：cols 3..5，黑方 rows 0..2，红方 rows 7..9
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	switch side {
	case Black:
		return row >= 0 && row <= 2
	case Red:
		return row >= Rows-3 && row <= Rows-1
	}
	return false
}

// 是否已过河
func crossedRiver(side Side, row int) bool {
	switch side {
	case Red:
		return row < riverRow
	case Black:
		return row >= riverRow
	}
	return false
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	return +1
}

// Board is the single source of truth for a game: live pieces by id, the
// occupancy index and the side to move.
type Board struct {
	pieces   map[string]*Piece
	squares  [NumSquares]*Piece
	generals [2]*Piece
	turn     Side
	hash     uint64

	// every id ever placed; ids are never handed out twice
	placed map[string]struct{}
}

func NewBoard(turn Side) *Board {
	initZobrist()
	b := &Board{
		pieces: make(map[string]*Piece, 32),
		placed: make(map[string]struct{}, 32),
		turn:   turn,
	}
	if turn == Black {
		b.hash = zobristSide
	}
	return b
}

// Place inserts a piece at its declared square.
func (b *Board) Place(p Piece) error {
	if !p.Pos.OnBoard() {
		return fmt.Errorf("%w: %s at %v", ErrOffBoard, p.ID, p.Pos)
	}
	if p.Side != Red && p.Side != Black {
		return fmt.Errorf("%w: %s has no side", ErrInvalidPiece, p.ID)
	}
	if p.Type <= PieceNone || p.Type >= numPieceTypes {
		return fmt.Errorf("%w: %s has unknown type %d", ErrInvalidPiece, p.ID, p.Type)
	}
	if _, ok := b.placed[p.ID]; ok {
		return fmt.Errorf("%w: id %s", ErrDuplicatePiece, p.ID)
	}
	if occ := b.squares[p.Pos.Index()]; occ != nil {
		return fmt.Errorf("%w: %v holds %s", ErrOccupiedSquare, p.Pos, occ.ID)
	}
	if p.Type == PieceGeneral && b.generals[p.Side] != nil {
		return fmt.Errorf("%w: second %s general %s", ErrDuplicatePiece, p.Side, p.ID)
	}

	pc := &p
	b.pieces[pc.ID] = pc
	b.placed[pc.ID] = struct{}{}
	b.squares[pc.Pos.Index()] = pc
	if pc.Type == PieceGeneral {
		b.generals[pc.Side] = pc
	}
	b.hash ^= pieceHashKey(pc.Side, pc.Type, pc.Pos.Index())
	return nil
}

// ApplyMove moves the named piece, capturing an opposing occupant of the
// destination, and hands the side to move over. Movement rules are not
// checked here; see IsLegal.
func (b *Board) ApplyMove(id string, to Square) (MoveRecord, error) {
	pc, ok := b.pieces[id]
	if !ok {
		return MoveRecord{}, fmt.Errorf("%w: unknown piece %q", ErrIllegalMove, id)
	}
	if !to.OnBoard() {
		return MoveRecord{}, fmt.Errorf("%w: destination %v off board", ErrIllegalMove, to)
	}
	if pc.Side != b.turn {
		return MoveRecord{}, fmt.Errorf("%w: %s is not on the side to move", ErrIllegalMove, id)
	}
	target := b.squares[to.Index()]
	if target != nil && target.Side == pc.Side {
		return MoveRecord{}, fmt.Errorf("%w: %v holds own piece %s", ErrIllegalMove, to, target.ID)
	}

	rec := MoveRecord{
		PieceID:  id,
		From:     pc.Pos,
		To:       to,
		Captured: target,
		prevHash: b.hash,
	}

	// 增量 Zobrist：移除 from、移除被吃子、加入 to、切换走子方
	h := b.hash
	h ^= pieceHashKey(pc.Side, pc.Type, pc.Pos.Index())
	if target != nil {
		h ^= pieceHashKey(target.Side, target.Type, to.Index())
		delete(b.pieces, target.ID)
		if target.Type == PieceGeneral {
			b.generals[target.Side] = nil
		}
	}
	h ^= pieceHashKey(pc.Side, pc.Type, to.Index())
	h ^= zobristSide

	b.squares[pc.Pos.Index()] = nil
	b.squares[to.Index()] = pc
	pc.Pos = to
	b.turn = b.turn.Opposite()
	b.hash = h
	return rec, nil
}

// Undo reverts the move described by rec. rec must come from the most recent
// ApplyMove on this board that has not been undone yet.
func (b *Board) Undo(rec MoveRecord) {
	pc := b.pieces[rec.PieceID]
	b.squares[rec.To.Index()] = nil
	b.squares[rec.From.Index()] = pc
	pc.Pos = rec.From

	if captured := rec.Captured; captured != nil {
		b.pieces[captured.ID] = captured
		b.squares[rec.To.Index()] = captured
		if captured.Type == PieceGeneral {
			b.generals[captured.Side] = captured
		}
	}
	b.turn = b.turn.Opposite()
	b.hash = rec.prevHash
}

// Winner reports the side whose opponent has lost its general.
func (b *Board) Winner() (Side, bool) {
	redAlive := b.generals[Red] != nil
	blackAlive := b.generals[Black] != nil
	switch {
	case redAlive && !blackAlive:
		return Red, true
	case blackAlive && !redAlive:
		return Black, true
	}
	// both present, or a setup without generals
	return NoSide, false
}

func (b *Board) Turn() Side { return b.turn }

func (b *Board) SetTurn(s Side) {
	if s == b.turn {
		return
	}
	b.turn = s
	b.hash ^= zobristSide
}

func (b *Board) Hash() uint64 { return b.hash }

func (b *Board) Len() int { return len(b.pieces) }

func (b *Board) Piece(id string) (Piece, bool) {
	pc, ok := b.pieces[id]
	if !ok {
		return Piece{}, false
	}
	return *pc, true
}

func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.OnBoard() {
		return Piece{}, false
	}
	pc := b.squares[sq.Index()]
	if pc == nil {
		return Piece{}, false
	}
	return *pc, true
}

func (b *Board) General(side Side) (Piece, bool) {
	if side != Red && side != Black || b.generals[side] == nil {
		return Piece{}, false
	}
	return *b.generals[side], true
}

// Each visits live pieces in row-major square order.
func (b *Board) Each(fn func(p Piece)) {
	for _, pc := range b.squares {
		if pc != nil {
			fn(*pc)
		}
	}
}

// Pieces returns the live pieces in row-major square order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.pieces))
	b.Each(func(p Piece) { out = append(out, p) })
	return out
}

func (b *Board) Count(side Side) int {
	n := 0
	for _, pc := range b.pieces {
		if pc.Side == side {
			n++
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	nb := &Board{
		pieces: make(map[string]*Piece, len(b.pieces)),
		placed: make(map[string]struct{}, len(b.placed)),
		turn:   b.turn,
		hash:   b.hash,
	}
	for id := range b.placed {
		nb.placed[id] = struct{}{}
	}
	for id, pc := range b.pieces {
		cp := *pc
		nb.pieces[id] = &cp
		nb.squares[cp.Pos.Index()] = &cp
		if cp.Type == PieceGeneral {
			nb.generals[cp.Side] = &cp
		}
	}
	return nb
}

// Equal compares live pieces, their squares and the side to move.
func (b *Board) Equal(o *Board) bool {
	if b.hash != o.hash || b.turn != o.turn || len(b.pieces) != len(o.pieces) {
		return false
	}
	for id, pc := range b.pieces {
		opc, ok := o.pieces[id]
		if !ok || *opc != *pc {
			return false
		}
	}
	return true
}

// Mirror returns the position with colours swapped and rows flipped, so that
// red's pieces stand where black's stood and vice versa.
func (b *Board) Mirror() *Board {
	nb := NewBoard(b.turn.Opposite())
	b.Each(func(p Piece) {
		p.Side = p.Side.Opposite()
		p.Pos.Row = Rows - 1 - p.Pos.Row
		p.ID = mirrorID(p.ID, p.Side)
		if err := nb.Place(p); err != nil {
			panic("mirror: " + err.Error())
		}
	})
	return nb
}

func mirrorID(id string, side Side) string {
	if len(id) > 0 && (id[0] == 'r' || id[0] == 'b') {
		return string(side.letter()) + id[1:]
	}
	return id + "'"
}

// Validate checks the occupancy index against the piece set.
func (b *Board) Validate() error {
	seen := 0
	for idx, pc := range b.squares {
		if pc == nil {
			continue
		}
		seen++
		if pc.Pos.Index() != idx {
			return fmt.Errorf("occupancy: %s recorded at %v but indexed at %v", pc.ID, pc.Pos, squareOf(idx))
		}
		if live, ok := b.pieces[pc.ID]; !ok || live != pc {
			return fmt.Errorf("occupancy: %v holds %s which is not live", squareOf(idx), pc.ID)
		}
	}
	if seen != len(b.pieces) {
		return fmt.Errorf("occupancy: %d indexed squares for %d live pieces", seen, len(b.pieces))
	}
	for _, side := range []Side{Red, Black} {
		var found *Piece
		for _, pc := range b.pieces {
			if pc.Side == side && pc.Type == PieceGeneral {
				if found != nil {
					return fmt.Errorf("%w: two %s generals", ErrDuplicatePiece, side)
				}
				found = pc
			}
		}
		if found != b.generals[side] {
			return fmt.Errorf("general index out of date for %s", side)
		}
	}
	if h := b.computeHash(); h != b.hash {
		return fmt.Errorf("hash mismatch: have %x, want %x", b.hash, h)
	}
	return nil
}
