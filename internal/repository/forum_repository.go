package repository

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

const (
	forumPostsFile    = "forum_posts.json"
	forumCommentsFile = "forum_comments.json"
)

type ForumRepository struct {
	store *Store
}

func NewForumRepository(store *Store) *ForumRepository {
	return &ForumRepository{store: store}
}

// Posts trả về toàn bộ bài viết, mới nhất trước.
func (r *ForumRepository) Posts() ([]model.ForumPost, error) {
	var posts []model.ForumPost
	if err := r.store.Load(forumPostsFile, &posts); err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *ForumRepository) FindPost(id string) (*model.ForumPost, error) {
	var posts []model.ForumPost
	if err := r.store.Load(forumPostsFile, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *ForumRepository) PostsByUser(userID string) ([]model.ForumPost, error) {
	posts, err := r.Posts()
	if err != nil {
		return nil, err
	}
	var mine []model.ForumPost
	for _, p := range posts {
		if p.AuthorID == userID {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (r *ForumRepository) SearchPosts(keyword string) ([]model.ForumPost, error) {
	posts, err := r.Posts()
	if err != nil {
		return nil, err
	}
	kw := strings.ToLower(keyword)
	var matched []model.ForumPost
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), kw) || strings.Contains(strings.ToLower(p.Content), kw) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *ForumRepository) CreatePost(post *model.ForumPost) error {
	var posts []model.ForumPost
	return r.store.Update(forumPostsFile, &posts, func() (bool, error) {
		post.ID = fmt.Sprintf("post_%04d", len(posts)+1)
		post.CreatedAt = time.Now()
		if post.Attachments == nil {
			post.Attachments = []model.Attachment{}
		}
		if post.Tags == nil {
			post.Tags = []string{}
		}
		posts = append(posts, *post)
		return true, nil
	})
}

func (r *ForumRepository) UpdatePost(id string, fn func(*model.ForumPost)) error {
	var posts []model.ForumPost
	return r.store.Update(forumPostsFile, &posts, func() (bool, error) {
		for i := range posts {
			if posts[i].ID == id {
				fn(&posts[i])
				now := time.Now()
				posts[i].UpdatedAt = &now
				return true, nil
			}
		}
		return false, util.ErrNotFound
	})
}

// DeletePost xóa bài viết và toàn bộ bình luận kèm theo.
func (r *ForumRepository) DeletePost(id string) error {
	var posts []model.ForumPost
	err := r.store.Update(forumPostsFile, &posts, func() (bool, error) {
		kept := posts[:0]
		for _, p := range posts {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		posts = kept
		return true, nil
	})
	if err != nil {
		return err
	}

	var comments []model.ForumComment
	return r.store.Update(forumCommentsFile, &comments, func() (bool, error) {
		kept := comments[:0]
		for _, c := range comments {
			if c.PostID != id {
				kept = append(kept, c)
			}
		}
		comments = kept
		return true, nil
	})
}

func (r *ForumRepository) IncrementViews(id string) error {
	var posts []model.ForumPost
	return r.store.Update(forumPostsFile, &posts, func() (bool, error) {
		for i := range posts {
			if posts[i].ID == id {
				posts[i].Views++
				return true, nil
			}
		}
		return false, nil
	})
}

// CommentsByPost trả về bình luận của một bài viết, cũ nhất trước.
func (r *ForumRepository) CommentsByPost(postID string) ([]model.ForumComment, error) {
	var comments []model.ForumComment
	if err := r.store.Load(forumCommentsFile, &comments); err != nil {
		return nil, err
	}
	var matched []model.ForumComment
	for _, c := range comments {
		if c.PostID == postID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *ForumRepository) FindComment(id string) (*model.ForumComment, error) {
	var comments []model.ForumComment
	if err := r.store.Load(forumCommentsFile, &comments); err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i], nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *ForumRepository) AddComment(comment *model.ForumComment) error {
	var comments []model.ForumComment
	err := r.store.Update(forumCommentsFile, &comments, func() (bool, error) {
		comment.ID = fmt.Sprintf("comment_%04d", len(comments)+1)
		comment.CreatedAt = time.Now()
		if comment.Attachments == nil {
			comment.Attachments = []model.Attachment{}
		}
		comments = append(comments, *comment)
		return true, nil
	})
	if err != nil {
		return err
	}
	return r.recountComments(comment.PostID)
}

func (r *ForumRepository) DeleteComment(id string) error {
	comment, err := r.FindComment(id)
	if err != nil {
		return err
	}

	var comments []model.ForumComment
	err = r.store.Update(forumCommentsFile, &comments, func() (bool, error) {
		kept := comments[:0]
		for _, c := range comments {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		comments = kept
		return true, nil
	})
	if err != nil {
		return err
	}
	return r.recountComments(comment.PostID)
}

func (r *ForumRepository) recountComments(postID string) error {
	comments, err := r.CommentsByPost(postID)
	if err != nil {
		return err
	}
	var posts []model.ForumPost
	return r.store.Update(forumPostsFile, &posts, func() (bool, error) {
		for i := range posts {
			if posts[i].ID == postID {
				posts[i].CommentsCount = len(comments)
				return true, nil
			}
		}
		return false, nil
	})
}
