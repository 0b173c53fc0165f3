package controller

import (
	"errors"

	"github.com/benbeisheim/chess-rules-backend/internal/chess"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/benbeisheim/chess-rules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	gameID, err := gc.gameService.CreateGame(playerID)
	if err != nil {
		log.Errorw("create game failed", "player", playerID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(gameState)
}

// LegalMoves answers GET /:gameId/moves?from=e2.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	from, err := chess.ParseSquare(c.Query("from"))
	if err != nil {
		return sendError(c, err)
	}

	moves, err := gc.gameService.LegalMoves(gameID, from)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move: " + err.Error(),
		})
	}

	result, state, err := gc.gameService.HandleMove(gameID, playerID, req)
	if err != nil {
		return sendError(c, err)
	}
	return sendResult(c, result, state)
}

func (gc *GameController) ChoosePromotion(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req model.PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion: " + err.Error(),
		})
	}

	result, state, err := gc.gameService.HandlePromotion(gameID, playerID, req)
	if err != nil {
		return sendError(c, err)
	}
	return sendResult(c, result, state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.DeleteGame(gameID, playerID); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// sendResult replies with the move outcome and the state that followed it.
// A rejected move is a conflict with the current position.
func sendResult(c *fiber.Ctx, result chess.MoveResult, state model.GameState) error {
	status := fiber.StatusOK
	if result == chess.Rejected {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"result": result.String(),
		"state":  state,
	})
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotOwner), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, chess.ErrInvalidSquare),
		errors.Is(err, chess.ErrInvalidPiece),
		errors.Is(err, chess.ErrOutOfBounds):
		return fiber.StatusBadRequest
	}
	log.Errorw("unexpected error", "error", err)
	return fiber.StatusInternalServerError
}
