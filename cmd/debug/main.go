package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// perft counts leaf nodes of the legal move tree; games end on general capture.
func perft(b *xiangqi.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	if _, over := b.Winner(); over {
		return 0
	}
	var n int64
	for _, mv := range xiangqi.LegalMoves(b) {
		rec, err := b.ApplyMove(mv.PieceID, mv.To)
		if err != nil {
			log.Fatalf("apply %v: %v", mv, err)
		}
		n += perft(b, depth-1)
		b.Undo(rec)
	}
	return n
}

func main() {
	fen := flag.String("fen", xiangqi.StartFEN, "position to inspect")
	depth := flag.Int("perft", 2, "perft depth")
	flag.Parse()

	b, err := xiangqi.DecodePosition(*fen)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(b)
	fmt.Println("FEN:", b.Encode())
	fmt.Println("Eval:", engine.Evaluate(b))

	moves := xiangqi.LegalMoves(b)
	fmt.Println("Legal moves:", len(moves))
	for _, mv := range moves {
		fmt.Println("  ", mv)
	}
	for d := 1; d <= *depth; d++ {
		fmt.Printf("perft(%d) = %d\n", d, perft(b, d))
	}
	if err := b.Validate(); err != nil {
		log.Fatalf("board corrupted: %v", err)
	}
}
