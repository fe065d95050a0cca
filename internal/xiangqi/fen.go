package xiangqi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidFEN = errors.New("invalid FEN")

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'e': PieceElephant,
	'n': PieceHorse,
	'h': PieceHorse,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

var pieceTypeToLetter = [numPieceTypes]rune{'.', 'k', 'a', 'b', 'n', 'r', 'c', 'p'}

func pieceToChar(p Piece) rune {
	ch := pieceTypeToLetter[p.Type]
	if p.Side == Red {
		return unicode.ToUpper(ch)
	}
	return ch
}

// Encode 输出 FEN：10 行用 “/” 隔开，空位用数字压缩；空格后 w/b 表示走子方
func (b *Board) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b.squares[indexOf(r, c)]
			if pc == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(*pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if b.turn == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodePosition builds a board from FEN. Pieces get canonical ids numbered
// per side and type in row-major order, so the start position yields the
// same ids as NewGame.
func DecodePosition(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: missing side to move", ErrInvalidFEN)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}

	var turn Side
	switch parts[1] {
	case "w", "r":
		turn = Red
	case "b":
		turn = Black
	default:
		return nil, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
	}

	b := NewBoard(turn)
	var counters [2][numPieceTypes]int
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece letter %q", ErrInvalidFEN, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			p := Piece{
				ID:   PieceID(side, pt, counters[side][pt]),
				Side: side,
				Type: pt,
				Pos:  Square{Row: r, Col: c},
			}
			counters[side][pt]++
			if err := b.Place(p); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
			}
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, r, c)
		}
	}
	return b, nil
}

// String renders the board as a text grid for logs and terminals.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H I\n")
	for r := 0; r < Rows; r++ {
		if r == riverRow {
			sb.WriteString("  ~~~~~~~~~~~~~~~~~\n")
		}
		sb.WriteByte(byte('0' + r))
		for c := 0; c < Cols; c++ {
			sb.WriteByte(' ')
			if pc := b.squares[indexOf(r, c)]; pc != nil {
				sb.WriteRune(pieceToChar(*pc))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(b.turn.String())
	sb.WriteString(" to move\n")
	return sb.String()
}
