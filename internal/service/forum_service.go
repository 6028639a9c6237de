package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"

	"go.uber.org/zap"
)

// Thư mục con của đính kèm diễn đàn trong kho lưu trữ.
const forumUploadDir = "forum"

type ForumService struct {
	forum       *repository.ForumRepository
	storage     StorageProvider
	maxFileSize int64
	logger      *zap.Logger
}

func NewForumService(forum *repository.ForumRepository, storage StorageProvider, maxFileSize int64, logger *zap.Logger) *ForumService {
	return &ForumService{forum: forum, storage: storage, maxFileSize: maxFileSize, logger: logger}
}

func (s *ForumService) Posts() ([]model.ForumPost, error) {
	posts, err := s.forum.Posts()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.ForumPost{}
	}
	return posts, nil
}

func (s *ForumService) Search(keyword string) ([]model.ForumPost, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.Posts()
	}
	posts, err := s.forum.SearchPosts(keyword)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.ForumPost{}
	}
	return posts, nil
}

func (s *ForumService) PostsByUser(userID string) ([]model.ForumPost, error) {
	posts, err := s.forum.PostsByUser(userID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.ForumPost{}
	}
	return posts, nil
}

// GetPost trả về bài viết kèm bình luận và tăng lượt xem.
func (s *ForumService) GetPost(id string) (*model.ForumPost, []model.ForumComment, error) {
	post, err := s.forum.FindPost(id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.forum.IncrementViews(id); err != nil {
		return nil, nil, err
	}
	post.Views++

	comments, err := s.forum.CommentsByPost(id)
	if err != nil {
		return nil, nil, err
	}
	if comments == nil {
		comments = []model.ForumComment{}
	}
	return post, comments, nil
}

// CreatePost tạo bài viết mới, lưu các file đính kèm trước khi ghi bài.
func (s *ForumService) CreatePost(author *util.SessionClaims, title, content string, tags []string, files []*multipart.FileHeader) (*model.ForumPost, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, errors.New("vui lòng nhập tiêu đề và nội dung")
	}

	attachments, err := s.saveAttachments(files)
	if err != nil {
		return nil, err
	}

	post := &model.ForumPost{
		Title:       title,
		Content:     content,
		AuthorID:    author.UserID,
		AuthorName:  author.Username,
		AuthorRole:  author.Role,
		Attachments: attachments,
		Tags:        tags,
	}
	if err := s.forum.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost sửa bài viết, chỉ tác giả mới được sửa.
func (s *ForumService) UpdatePost(userID, postID, title, content string, tags []string) error {
	post, err := s.forum.FindPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return util.ErrPermissionDenied
	}

	return s.forum.UpdatePost(postID, func(p *model.ForumPost) {
		if strings.TrimSpace(title) != "" {
			p.Title = strings.TrimSpace(title)
		}
		if strings.TrimSpace(content) != "" {
			p.Content = strings.TrimSpace(content)
		}
		if tags != nil {
			p.Tags = tags
		}
	})
}

// DeletePost xóa bài viết cùng bình luận và file đính kèm trên đĩa.
func (s *ForumService) DeletePost(userID, postID string) error {
	post, err := s.forum.FindPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return util.ErrPermissionDenied
	}

	if err := s.forum.DeletePost(postID); err != nil {
		return err
	}
	s.removeAttachments(post.Attachments)
	return nil
}

func (s *ForumService) AddComment(author *util.SessionClaims, postID, content string, files []*multipart.FileHeader) (*model.ForumComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("vui lòng nhập nội dung bình luận")
	}
	if _, err := s.forum.FindPost(postID); err != nil {
		return nil, err
	}

	attachments, err := s.saveAttachments(files)
	if err != nil {
		return nil, err
	}

	comment := &model.ForumComment{
		PostID:      postID,
		AuthorID:    author.UserID,
		AuthorName:  author.Username,
		AuthorRole:  author.Role,
		Content:     content,
		Attachments: attachments,
	}
	if err := s.forum.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ForumService) DeleteComment(userID, commentID string) error {
	comment, err := s.forum.FindComment(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return util.ErrPermissionDenied
	}

	if err := s.forum.DeleteComment(commentID); err != nil {
		return err
	}
	s.removeAttachments(comment.Attachments)
	return nil
}

func (s *ForumService) saveAttachments(files []*multipart.FileHeader) ([]model.Attachment, error) {
	attachments := []model.Attachment{}
	for _, fh := range files {
		if fh.Size > s.maxFileSize {
			return nil, errors.New("file vượt quá dung lượng cho phép: " + fh.Filename)
		}
		if !util.AllowedForumFile(fh.Filename) {
			return nil, errors.New("định dạng file không được hỗ trợ: " + fh.Filename)
		}

		src, err := fh.Open()
		if err != nil {
			return nil, err
		}

		stored := util.UniqueFilename(fh.Filename)
		path, err := s.storage.Save(context.Background(), forumUploadDir, stored, src, fh.Size, fh.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return nil, err
		}

		attachments = append(attachments, model.Attachment{
			Type:     util.FileKind(fh.Filename),
			Filename: fh.Filename,
			Path:     path,
			Size:     fh.Size,
		})
	}
	return attachments, nil
}

// removeAttachments dọn file trên kho lưu trữ; lỗi xóa file chỉ ghi log vì
// bản ghi đã gỡ xong.
func (s *ForumService) removeAttachments(attachments []model.Attachment) {
	for _, a := range attachments {
		if err := s.storage.Delete(context.Background(), a.Path); err != nil {
			s.logger.Warn("không xóa được file đính kèm",
				zap.String("path", a.Path),
				zap.Error(err),
			)
		}
	}
}
