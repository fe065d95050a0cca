package xiangqi

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGameLayout(t *testing.T) {
	b := NewGame()
	if b.Len() != 32 {
		t.Fatalf("start position has %d pieces, want 32", b.Len())
	}
	if b.Count(Red) != 16 || b.Count(Black) != 16 {
		t.Fatalf("pieces per side: red=%d black=%d", b.Count(Red), b.Count(Black))
	}
	if b.Turn() != Red {
		t.Fatal("red moves first")
	}

	want := map[string]Square{
		"rg0": sq(9, 4), "bg0": sq(0, 4),
		"rc0": sq(7, 1), "rc1": sq(7, 7),
		"bc0": sq(2, 1), "bc1": sq(2, 7),
		"rr1": sq(9, 8), "bh0": sq(0, 1),
		"rp4": sq(6, 8), "bp0": sq(3, 0),
	}
	for id, pos := range want {
		p, ok := b.Piece(id)
		if !ok {
			t.Fatalf("piece %s missing", id)
		}
		if p.Pos != pos {
			t.Fatalf("%s at %v, want %v", id, p.Pos, pos)
		}
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeStartPosition(t *testing.T) {
	if got := NewGame().Encode(); got != StartFEN {
		t.Fatalf("got %q want %q", got, StartFEN)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	fen := "3k5/4a4/9/9/2b6/9/9/4C4/4p4/3K5 b"
	b, err := DecodePosition(fen)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Encode(); got != fen {
		t.Fatalf("got %q want %q", got, fen)
	}
	if b.Turn() != Black {
		t.Fatal("side to move lost")
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"missing side": "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR",
		"short board":  "rnbakabnr/9/9 w",
		"bad letter":   "rnbakabnx/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w",
		"long rank":    "rnbakabnr1/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w",
		"short rank":   "rnbakabn/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w",
		"two generals": "rnbkkabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w",
		"bad side":     "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR x",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodePosition(fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("want ErrInvalidFEN, got %v", err)
			}
		})
	}
}

func TestBoardString(t *testing.T) {
	s := NewGame().String()
	lines := strings.Split(strings.TrimSpace(s), "\n")
	// header + 10 ranks + river + side line
	if len(lines) != 13 {
		t.Fatalf("unexpected grid:\n%s", s)
	}
	if !strings.HasPrefix(lines[1], "0 r n b a k a b n r") {
		t.Fatalf("rank 0 rendered as %q", lines[1])
	}
	if !strings.HasSuffix(s, "red to move\n") {
		t.Fatalf("missing side line:\n%s", s)
	}
}
