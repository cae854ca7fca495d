package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tubelens/domain/dto"
	"tubelens/usecase"
)

// IBattleHandler defines the channel comparison HTTP handler.
type IBattleHandler interface {
	Compare(ctx *gin.Context)
}

type BattleHandler struct {
	battleUseCase usecase.IBattleUseCase
}

func NewBattleHandler(battleUseCase usecase.IBattleUseCase) IBattleHandler {
	return &BattleHandler{battleUseCase: battleUseCase}
}

// Compare handles POST /api/battle
func (h *BattleHandler) Compare(ctx *gin.Context) {
	var req dto.BattleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	result, err := h.battleUseCase.CompareChannels(ctx.Request.Context(), ctx.GetString("user_name"), req.ChannelAID, req.ChannelBID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compare channels",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
