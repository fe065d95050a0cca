package httpserver

import (
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 前端用的坐标：row 0 是黑方底线
type SquareDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveDTO struct {
	PieceID string    `json:"piece_id"`
	From    SquareDTO `json:"from"`
	To      SquareDTO `json:"to"`
}

type PieceDTO struct {
	ID   string `json:"id"`
	Side string `json:"side"`
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// NewGame 请求；FEN 为空时用标准开局
type NewGameRequest struct {
	FEN string `json:"fen"`
}

// State 返回：new_game / play / state / ai_move 共用
type StateResponse struct {
	GameID     string     `json:"game_id"`
	Position   string     `json:"position"` // FEN
	ToMove     string     `json:"to_move"`  // "red" / "black"
	Pieces     []PieceDTO `json:"pieces"`
	LegalMoves []MoveDTO  `json:"legal_moves"`
	MoveCount  int        `json:"move_count"`
	Status     string     `json:"status"` // "ongoing" / "red_wins" / "black_wins"
}

// Play 请求
type PlayRequest struct {
	GameID  string    `json:"game_id"`
	PieceID string    `json:"piece_id"`
	To      SquareDTO `json:"to"`
}

type PlayResponse struct {
	StateResponse
	Captured string `json:"captured,omitempty"`
}

// AiMoveRequest 让 AI 为当前局面走一步。Depth 优先于 Difficulty。
type AiMoveRequest struct {
	GameID     string `json:"game_id"`
	Depth      int    `json:"depth"`
	Difficulty string `json:"difficulty"` // easy / medium / hard
	TimeMs     int64  `json:"time_ms"`
}

type AiMoveResponse struct {
	StateResponse
	BestMove MoveDTO `json:"best_move"`
	Captured string  `json:"captured,omitempty"`
	Score    int     `json:"score"` // 红方视角
	Depth    int     `json:"depth"`
	Nodes    int64   `json:"nodes"`
	Cutoffs  int64   `json:"cutoffs"`
	TimeMs   int64   `json:"time_ms"`
}

// State / Record 请求
type GameRequest struct {
	GameID string `json:"game_id"`
}

func squareToDTO(s xiangqi.Square) SquareDTO { return SquareDTO{Row: s.Row, Col: s.Col} }

func dtoToSquare(s SquareDTO) xiangqi.Square { return xiangqi.Square{Row: s.Row, Col: s.Col} }

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{PieceID: m.PieceID, From: squareToDTO(m.From), To: squareToDTO(m.To)}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func piecesToDTO(ps []xiangqi.Piece) []PieceDTO {
	out := make([]PieceDTO, len(ps))
	for i, p := range ps {
		out[i] = PieceDTO{
			ID:   p.ID,
			Side: p.Side.String(),
			Type: p.Type.String(),
			Row:  p.Pos.Row,
			Col:  p.Pos.Col,
		}
	}
	return out
}

func statusOf(s game.Snapshot) string {
	if !s.Over {
		return "ongoing"
	}
	if s.Winner == xiangqi.Red {
		return "red_wins"
	}
	return "black_wins"
}

func stateFromSnapshot(s game.Snapshot) StateResponse {
	return StateResponse{
		GameID:     s.ID,
		Position:   s.FEN,
		ToMove:     s.ToMove.String(),
		Pieces:     piecesToDTO(s.Pieces),
		LegalMoves: movesToDTO(s.LegalMoves),
		MoveCount:  len(s.Moves),
		Status:     statusOf(s),
	}
}
