package handlers

import (
	"proxym-fin/internal/dto"
	"proxym-fin/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// List godoc
// @Summary List all transactions
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.Transaction
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	transactions, err := h.txService.List(c.Context())
	if err != nil {
		h.logger.Error("Listing transactions failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(transactions)
}

// ListByUser godoc
// @Summary List one user's transactions
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path int true "User id"
// @Success 200 {array} dto.Transaction
// @Router /transactions/user/{id} [get]
func (h *TransactionHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	transactions, err := h.txService.ListByUser(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	tx, err := h.txService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req dto.Transaction
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := h.txService.Create(c.Context(), &req)
	if err != nil {
		h.logger.Error("Creating transaction failed", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.Transaction
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := h.txService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	if err := h.txService.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
