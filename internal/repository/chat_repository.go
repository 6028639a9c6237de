package repository

import (
	"fmt"
	"sort"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

const chatMessagesFile = "chat_messages.json"

// Cửa sổ tin nhắn trả về khi client vào phòng chat lần đầu.
const chatInitialWindow = 50

type ChatRepository struct {
	store *Store
}

func NewChatRepository(store *Store) *ChatRepository {
	return &ChatRepository{store: store}
}

// All trả về toàn bộ tin nhắn, cũ nhất trước.
func (r *ChatRepository) All() ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := r.store.Load(chatMessagesFile, &messages); err != nil {
		return nil, err
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *ChatRepository) FindByID(id string) (*model.ChatMessage, error) {
	messages, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].ID == id {
			return &messages[i], nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *ChatRepository) Add(msg *model.ChatMessage) error {
	var messages []model.ChatMessage
	return r.store.Update(chatMessagesFile, &messages, func() (bool, error) {
		msg.ID = fmt.Sprintf("msg_%06d", len(messages)+1)
		msg.CreatedAt = time.Now()
		messages = append(messages, *msg)
		return true, nil
	})
}

func (r *ChatRepository) Delete(id string) error {
	var messages []model.ChatMessage
	return r.store.Update(chatMessagesFile, &messages, func() (bool, error) {
		kept := messages[:0]
		for _, m := range messages {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		messages = kept
		return true, nil
	})
}

// After phục vụ polling: không có lastID thì trả về cửa sổ tin nhắn gần nhất,
// có lastID thì trả về phần sau nó; lastID không còn tồn tại trả về rỗng.
func (r *ChatRepository) After(lastID string) ([]model.ChatMessage, error) {
	messages, err := r.All()
	if err != nil {
		return nil, err
	}

	if lastID == "" {
		if len(messages) > chatInitialWindow {
			return messages[len(messages)-chatInitialWindow:], nil
		}
		return messages, nil
	}

	for i, m := range messages {
		if m.ID == lastID {
			return messages[i+1:], nil
		}
	}
	return []model.ChatMessage{}, nil
}
