// service/game_manager.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-rules-backend/internal/chess"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// GameManager owns every live game. Each game's board belongs to that game
// alone; the manager only guards the index.
type GameManager struct {
	games   map[string]*model.Game
	idleTTL time.Duration
	mu      sync.RWMutex
}

func NewGameManager(idleTTL time.Duration) *GameManager {
	return &GameManager{
		games:   make(map[string]*model.Game),
		idleTTL: idleTTL,
	}
}

// Run removes idle games every interval until ctx is cancelled. A game is
// idle when nobody is connected and it has not changed for idleTTL.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := gm.ReapIdle(now); removed > 0 {
				log.Infow("reaped idle games", "count", removed)
			}
		}
	}
}

// ReapIdle removes the games that are idle at now and returns how many went.
func (gm *GameManager) ReapIdle(now time.Time) int {
	if gm.idleTTL <= 0 {
		return 0
	}
	gm.mu.Lock()
	defer gm.mu.Unlock()

	removed := 0
	for id, game := range gm.games {
		if game.ConnectionCount() > 0 || now.Sub(game.LastActive()) < gm.idleTTL {
			continue
		}
		game.CloseConnections()
		delete(gm.games, id)
		removed++
	}
	return removed
}

func (gm *GameManager) CreateGame(gameID, ownerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	gm.games[gameID] = model.NewGame(gameID, ownerID)
	log.Infow("game created", "game", gameID, "owner", ownerID)
	return nil
}

// NewGameID returns a fresh game identifier.
func NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// GameIDs lists the ids of all live games.
func (gm *GameManager) GameIDs() []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	ids := make([]string, 0, len(gm.games))
	for id := range gm.games {
		ids = append(ids, id)
	}
	return ids
}

func (gm *GameManager) DeleteGame(gameID, playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	game, exists := gm.games[gameID]
	if !exists {
		return ErrGameNotFound
	}
	if !game.IsOwner(playerID) {
		return model.ErrNotOwner
	}
	game.CloseConnections()
	delete(gm.games, gameID)
	log.Infow("game deleted", "game", gameID)
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from chess.Coordinate) ([]chess.Coordinate, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, move model.MoveRequest) (chess.MoveResult, model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return chess.Rejected, model.GameState{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) ChoosePromotion(gameID, playerID string, req model.PromotionRequest) (chess.MoveResult, model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return chess.Rejected, model.GameState{}, err
	}
	return game.ChoosePromotion(playerID, req)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
