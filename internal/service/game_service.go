package service

import (
	"fmt"

	"github.com/benbeisheim/chess-rules-backend/internal/chess"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(ownerID string) (string, error) {
	gameID := NewGameID()

	if err := gs.gameManager.CreateGame(gameID, ownerID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID, playerID string) error {
	return gs.gameManager.DeleteGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, from chess.Coordinate) ([]chess.Coordinate, error) {
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) HandleMove(gameID, playerID string, move model.MoveRequest) (chess.MoveResult, model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandlePromotion(gameID, playerID string, req model.PromotionRequest) (chess.MoveResult, model.GameState, error) {
	return gs.gameManager.ChoosePromotion(gameID, playerID, req)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
