package model

import "github.com/benbeisheim/chess-rules-backend/internal/chess"

// BoardState is the board as the client renders it: rows from Black's back
// rank down, nil for empty squares.
type BoardState struct {
	Board             [][]*chess.Piece  `json:"board"`
	BlackKingPosition *chess.Coordinate `json:"blackKingPosition"`
	WhiteKingPosition *chess.Coordinate `json:"whiteKingPosition"`
}

func newBoardState(b *chess.Board) BoardState {
	state := BoardState{Board: make([][]*chess.Piece, chess.BoardSize)}
	for rank := 0; rank < chess.BoardSize; rank++ {
		state.Board[rank] = make([]*chess.Piece, chess.BoardSize)
		for file := 0; file < chess.BoardSize; file++ {
			if p, ok := b.PieceAt(chess.At(rank, file)); ok {
				state.Board[rank][file] = &p
			}
		}
	}
	if sq, ok := b.KingSquare(chess.White); ok {
		state.WhiteKingPosition = &sq
	}
	if sq, ok := b.KingSquare(chess.Black); ok {
		state.BlackKingPosition = &sq
	}
	return state
}
