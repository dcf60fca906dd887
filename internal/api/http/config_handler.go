package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftwrap/internal/config"
	"giftwrap/internal/game"
)

// @Summary Get server game settings
// @Description Returns the default search depth, the depth limit and the board setup
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func GetConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"boardSize":    game.BoardSize,
			"aiDepth":      cfg.AIDepth,
			"maxAiDepth":   config.MaxAIDepth,
			"aiParallel":   cfg.AIParallel,
			"blockedCells": cfg.BlockedCells,
		})
	}
}
