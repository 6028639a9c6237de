package repository

import (
	"fmt"
	"testing"

	"github.com/tuanminh7/website-lms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumPostCommentLifecycle(t *testing.T) {
	repo := NewForumRepository(newTestStore(t))

	post := &model.ForumPost{Title: "Hỏi về chương 1", Content: "Nội dung", AuthorID: "1"}
	require.NoError(t, repo.CreatePost(post))
	assert.Equal(t, "post_0001", post.ID)

	comment := &model.ForumComment{PostID: post.ID, AuthorID: "2", Content: "Trả lời"}
	require.NoError(t, repo.AddComment(comment))
	assert.Equal(t, "comment_0001", comment.ID)

	found, err := repo.FindPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.CommentsCount)

	// Xóa bài viết phải kéo theo bình luận.
	require.NoError(t, repo.DeletePost(post.ID))
	_, err = repo.FindComment(comment.ID)
	assert.Error(t, err)
}

func TestForumSearchAndViews(t *testing.T) {
	repo := NewForumRepository(newTestStore(t))

	require.NoError(t, repo.CreatePost(&model.ForumPost{Title: "Đạo hàm là gì", Content: "x", AuthorID: "1"}))
	require.NoError(t, repo.CreatePost(&model.ForumPost{Title: "Tích phân", Content: "nói về đạo hàm", AuthorID: "1"}))
	require.NoError(t, repo.CreatePost(&model.ForumPost{Title: "Hình học", Content: "y", AuthorID: "2"}))

	matched, err := repo.SearchPosts("ĐẠO HÀM")
	require.NoError(t, err)
	assert.Len(t, matched, 2, "tìm kiếm không phân biệt hoa thường trên tiêu đề và nội dung")

	require.NoError(t, repo.IncrementViews("post_0001"))
	require.NoError(t, repo.IncrementViews("post_0001"))
	post, err := repo.FindPost("post_0001")
	require.NoError(t, err)
	assert.Equal(t, 2, post.Views)
}

func TestChatPollingWindow(t *testing.T) {
	repo := NewChatRepository(newTestStore(t))

	for i := 0; i < 60; i++ {
		require.NoError(t, repo.Add(&model.ChatMessage{
			Content:  fmt.Sprintf("tin nhắn %d", i),
			AuthorID: "1",
		}))
	}

	// Lần đầu vào phòng chỉ nhận cửa sổ 50 tin gần nhất.
	initial, err := repo.After("")
	require.NoError(t, err)
	require.Len(t, initial, chatInitialWindow)
	assert.Equal(t, "msg_000011", initial[0].ID)

	// Polling với last_id chỉ nhận phần mới hơn.
	newer, err := repo.After("msg_000058")
	require.NoError(t, err)
	require.Len(t, newer, 2)
	assert.Equal(t, "msg_000059", newer[0].ID)

	// last_id không còn tồn tại trả về rỗng.
	gone, err := repo.After("msg_999999")
	require.NoError(t, err)
	assert.Empty(t, gone)
}
