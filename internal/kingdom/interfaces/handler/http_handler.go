package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"TreeKingdom/internal/kingdom/app/port"
	"TreeKingdom/internal/shared/transport"
)

// RankHttpHandler 对外只读的排行榜接口。
type RankHttpHandler struct {
	board port.RankBoard
}

func NewRankHttpHandler(board port.RankBoard) *RankHttpHandler {
	return &RankHttpHandler{board: board}
}

func (h *RankHttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	rankGroup := group.Group("/rank")
	rankGroup.GET("/top", h.Top)
}

func (h *RankHttpHandler) Top(c *gin.Context) {
	n, _ := strconv.ParseInt(c.DefaultQuery("n", "10"), 10, 64)
	if n <= 0 || n > 100 {
		n = 10
	}

	entries, err := h.board.TopScores(c.Request.Context(), n)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": transport.SystemError, "msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": transport.OK, "msg": gin.H{"entries": entries}})
}
