package xiangqi

import (
	"fmt"
	"strconv"
)

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

// letter is the id prefix used for the side: r or b.
func (s Side) letter() byte {
	if s == Black {
		return 'b'
	}
	return 'r'
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceHorse              // 马
	PieceChariot            // 车
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒

	numPieceTypes = 8
)

var pieceTypeNames = [numPieceTypes]string{
	"none", "general", "advisor", "elephant", "horse", "chariot", "cannon", "soldier",
}

func (t PieceType) String() string {
	if t < 0 || int(t) >= numPieceTypes {
		return "PieceType(" + strconv.Itoa(int(t)) + ")"
	}
	return pieceTypeNames[t]
}

// id letters: g a e h r c p
var pieceTypeLetters = [numPieceTypes]byte{0, 'g', 'a', 'e', 'h', 'r', 'c', 'p'}

// PieceID builds the canonical id: side letter, type letter, index. Example: rh1.
func PieceID(side Side, t PieceType, index int) string {
	return string([]byte{side.letter(), pieceTypeLetters[t]}) + strconv.Itoa(index)
}

// Square is a (row, column) coordinate. Row 0 is black's back rank.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}

func (s Square) Index() int { return s.Row*Cols + s.Col }

func squareOf(idx int) Square { return Square{Row: idx / Cols, Col: idx % Cols} }

// String renders file letter + row, e.g. E9 for red's general.
func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string(rune('A'+s.Col)) + strconv.Itoa(s.Row)
}

// Piece carries immutable identity plus its current square.
type Piece struct {
	ID   string    `json:"id"`
	Side Side      `json:"side"`
	Type PieceType `json:"type"`
	Pos  Square    `json:"pos"`
}

func (p Piece) String() string {
	return p.ID + "@" + p.Pos.String()
}

// Move pairs a piece id with a destination; From is kept for ordering and display.
type Move struct {
	PieceID string `json:"piece_id"`
	From    Square `json:"from"`
	To      Square `json:"to"`
}

func (m Move) String() string {
	return m.PieceID + " " + m.From.String() + "-" + m.To.String()
}

// MoveRecord is everything Undo needs to restore the pre-move board.
type MoveRecord struct {
	PieceID  string
	From     Square
	To       Square
	Captured *Piece // nil when the move was quiet

	prevHash uint64
}

func (r MoveRecord) Move() Move {
	return Move{PieceID: r.PieceID, From: r.From, To: r.To}
}
