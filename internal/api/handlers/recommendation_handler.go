package handlers

import (
	"proxym-fin/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// ForUser godoc
// @Summary Product recommendations for a user
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Param userId path int true "User id"
// @Success 200 {array} dto.Product
// @Router /recommendations/{userId} [get]
func (h *RecommendationHandler) ForUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	products, err := h.recService.GetRecommendations(c.Context(), userID)
	if err != nil {
		h.logger.Error("Recommendations failed", zap.Int64("user_id", userID), zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(products)
}
