package controller

import (
	"errors"
	"strings"

	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	forum *service.ForumService
}

func NewForumController(forum *service.ForumService) *ForumController {
	return &ForumController{forum: forum}
}

// List trả về bài viết, hỗ trợ ?q= tìm kiếm và ?mine=1 lọc bài của mình.
func (ctl *ForumController) List(c *gin.Context) {
	if c.Query("mine") == "1" {
		posts, err := ctl.forum.PostsByUser(util.GetSession(c).UserID)
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		util.Success(c, gin.H{"posts": posts})
		return
	}

	posts, err := ctl.forum.Search(c.Query("q"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"posts": posts})
}

// Detail trả về bài viết kèm bình luận, mỗi lượt xem tăng bộ đếm.
func (ctl *ForumController) Detail(c *gin.Context) {
	post, comments, err := ctl.forum.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy bài viết")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"post": post, "comments": comments})
}

// Create xử lý POST /api/forum/posts, nhận multipart để kèm file.
func (ctl *ForumController) Create(c *gin.Context) {
	title := c.PostForm("title")
	content := c.PostForm("content")
	tags := splitTags(c.PostForm("tags"))

	form, err := c.MultipartForm()
	if err != nil {
		util.BadRequest(c, "Dữ liệu bài viết không hợp lệ")
		return
	}

	post, err := ctl.forum.CreatePost(util.GetSession(c), title, content, tags, form.File["attachments"])
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.SuccessMessage(c, "Đã đăng bài viết", gin.H{"post": post})
}

type updatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Update xử lý PUT /api/forum/posts/:id, chỉ tác giả mới sửa được.
func (ctl *ForumController) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Dữ liệu bài viết không hợp lệ")
		return
	}

	err := ctl.forum.UpdatePost(util.GetSession(c).UserID, c.Param("id"), req.Title, req.Content, req.Tags)
	if err != nil {
		respondForumError(c, err)
		return
	}
	util.SuccessMessage(c, "Đã cập nhật bài viết", nil)
}

// Delete xử lý DELETE /api/forum/posts/:id.
func (ctl *ForumController) Delete(c *gin.Context) {
	if err := ctl.forum.DeletePost(util.GetSession(c).UserID, c.Param("id")); err != nil {
		respondForumError(c, err)
		return
	}
	util.SuccessMessage(c, "Đã xóa bài viết", nil)
}

// AddComment xử lý POST /api/forum/posts/:id/comments (multipart).
func (ctl *ForumController) AddComment(c *gin.Context) {
	content := c.PostForm("content")

	form, err := c.MultipartForm()
	if err != nil {
		util.BadRequest(c, "Dữ liệu bình luận không hợp lệ")
		return
	}

	comment, err := ctl.forum.AddComment(util.GetSession(c), c.Param("id"), content, form.File["attachments"])
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy bài viết")
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.SuccessMessage(c, "Đã thêm bình luận", gin.H{"comment": comment})
}

// DeleteComment xử lý DELETE /api/forum/comments/:id.
func (ctl *ForumController) DeleteComment(c *gin.Context) {
	if err := ctl.forum.DeleteComment(util.GetSession(c).UserID, c.Param("id")); err != nil {
		respondForumError(c, err)
		return
	}
	util.SuccessMessage(c, "Đã xóa bình luận", nil)
}

func respondForumError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(c, "Không tìm thấy dữ liệu")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
