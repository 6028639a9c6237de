package controller

import (
	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	ai *service.AIService
}

func NewAIController(ai *service.AIService) *AIController {
	return &AIController{ai: ai}
}

type aiChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// Chat xử lý POST /api/ai/chat: chuyển câu hỏi sang trợ lý AI.
func (ctl *AIController) Chat(c *gin.Context) {
	var req aiChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Vui lòng nhập câu hỏi")
		return
	}

	answer, err := ctl.ai.Ask(c.Request.Context(), req.Question)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, gin.H{"answer": answer})
}
