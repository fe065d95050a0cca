package engine

import (
	"math/rand"
	"testing"

	"xiangqi/internal/xiangqi"
)

// playRandom advances b by up to n seeded random legal moves.
func playRandom(t *testing.T, b *xiangqi.Board, seed int64, n int) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		if _, over := b.Winner(); over {
			return
		}
		moves := xiangqi.LegalMoves(b)
		if len(moves) == 0 {
			return
		}
		mv := moves[rng.Intn(len(moves))]
		if _, err := b.ApplyMove(mv.PieceID, mv.To); err != nil {
			t.Fatalf("apply %v: %v", mv, err)
		}
	}
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	if got := Evaluate(xiangqi.NewGame()); got != 0 {
		t.Fatalf("start position scores %d, want 0", got)
	}
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := xiangqi.NewGame()
		playRandom(t, b, seed, int(seed)*4)
		got, mirrored := Evaluate(b), Evaluate(b.Mirror())
		if got != -mirrored {
			t.Fatalf("seed %d: eval %d, mirrored %d\n%s", seed, got, mirrored, b)
		}
	}
}

func TestEvaluateMaterialOrder(t *testing.T) {
	v := PieceValue
	if !(v(xiangqi.PieceGeneral) > 5*v(xiangqi.PieceChariot) &&
		v(xiangqi.PieceChariot) > v(xiangqi.PieceCannon) &&
		v(xiangqi.PieceCannon) >= v(xiangqi.PieceHorse) &&
		v(xiangqi.PieceHorse) > v(xiangqi.PieceElephant) &&
		v(xiangqi.PieceElephant) == v(xiangqi.PieceAdvisor) &&
		v(xiangqi.PieceAdvisor) > v(xiangqi.PieceSoldier)) {
		t.Fatal("material weights out of order")
	}
}

func TestEvaluateSoldierCrossingRiver(t *testing.T) {
	home, err := xiangqi.DecodePosition("9/9/9/9/9/4P4/9/9/9/9 w")
	if err != nil {
		t.Fatal(err)
	}
	crossed, err := xiangqi.DecodePosition("9/9/9/9/4P4/9/9/9/9/9 w")
	if err != nil {
		t.Fatal(err)
	}
	if Evaluate(home) != 30 || Evaluate(crossed) != 70 {
		t.Fatalf("soldier: home %d, crossed %d", Evaluate(home), Evaluate(crossed))
	}
}

func TestEvaluateCapture(t *testing.T) {
	b := xiangqi.NewGame()
	if _, err := b.ApplyMove("rc0", xiangqi.Square{Row: 0, Col: 1}); err != nil {
		t.Fatal(err)
	}
	if got := Evaluate(b); got != PieceValue(xiangqi.PieceHorse) {
		t.Fatalf("after winning a horse: %d", got)
	}
}
