package model

import "time"

// Attachment mô tả file đính kèm của bài viết hoặc bình luận.
type Attachment struct {
	Type     string `json:"type"` // "image" hoặc "file"
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

type ForumPost struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	AuthorID      string       `json:"author_id"`
	AuthorName    string       `json:"author_name"`
	AuthorRole    UserRole     `json:"author_role"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     *time.Time   `json:"updated_at"`
	Attachments   []Attachment `json:"attachments"`
	Tags          []string     `json:"tags"`
	Views         int          `json:"views"`
	CommentsCount int          `json:"comments_count"`
}

type ForumComment struct {
	ID          string       `json:"id"`
	PostID      string       `json:"post_id"`
	AuthorID    string       `json:"author_id"`
	AuthorName  string       `json:"author_name"`
	AuthorRole  UserRole     `json:"author_role"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"created_at"`
	Attachments []Attachment `json:"attachments"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorRole UserRole  `json:"author_role"`
	CreatedAt  time.Time `json:"created_at"`
	ReplyTo    *string   `json:"reply_to"`
}
