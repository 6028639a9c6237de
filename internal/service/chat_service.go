package service

import (
	"errors"
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"
)

type ChatService struct {
	chat *repository.ChatRepository
}

func NewChatService(chat *repository.ChatRepository) *ChatService {
	return &ChatService{chat: chat}
}

// Messages trả về tin nhắn cho client polling: lần đầu là cửa sổ gần nhất,
// các lần sau chỉ phần mới hơn last_id.
func (s *ChatService) Messages(lastID string) ([]model.ChatMessage, error) {
	messages, err := s.chat.After(lastID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return messages, nil
}

func (s *ChatService) Send(author *util.SessionClaims, content string, replyTo string) (*model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("tin nhắn không được để trống")
	}

	msg := &model.ChatMessage{
		Content:    content,
		AuthorID:   author.UserID,
		AuthorName: author.Username,
		AuthorRole: author.Role,
	}
	if replyTo != "" {
		if _, err := s.chat.FindByID(replyTo); err != nil {
			return nil, err
		}
		msg.ReplyTo = &replyTo
	}

	if err := s.chat.Add(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Delete xóa tin nhắn, chỉ người gửi mới được xóa.
func (s *ChatService) Delete(userID, messageID string) error {
	msg, err := s.chat.FindByID(messageID)
	if err != nil {
		return err
	}
	if msg.AuthorID != userID {
		return util.ErrPermissionDenied
	}
	return s.chat.Delete(messageID)
}
