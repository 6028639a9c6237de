package controller

import (
	"errors"

	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat *service.ChatService
}

func NewChatController(chat *service.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// List xử lý GET /api/chat/messages?last_id=: client polling tin nhắn mới.
func (ctl *ChatController) List(c *gin.Context) {
	messages, err := ctl.chat.Messages(c.Query("last_id"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"messages": messages})
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	ReplyTo string `json:"reply_to"`
}

// Send xử lý POST /api/chat/messages.
func (ctl *ChatController) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Tin nhắn không được để trống")
		return
	}

	msg, err := ctl.chat.Send(util.GetSession(c), req.Content, req.ReplyTo)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Tin nhắn được trả lời không còn tồn tại")
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, gin.H{"message_data": msg})
}

// Delete xử lý DELETE /api/chat/messages/:id.
func (ctl *ChatController) Delete(c *gin.Context) {
	err := ctl.chat.Delete(util.GetSession(c).UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(c, "Không tìm thấy tin nhắn")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.SuccessMessage(c, "Đã xóa tin nhắn", nil)
}
