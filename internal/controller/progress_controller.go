package controller

import (
	"errors"

	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{progress: progress}
}

type markLessonRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	LessonID string `json:"lesson_id" binding:"required"`
}

// Mark xử lý POST /api/progress: học sinh đánh dấu hoàn thành bài học.
func (ctl *ProgressController) Mark(c *gin.Context) {
	var req markLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Thiếu thông tin khóa học hoặc bài học")
		return
	}

	claims := util.GetSession(c)
	if err := ctl.progress.MarkLesson(claims.UserID, req.CourseID, req.LessonID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy khóa học")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.SuccessMessage(c, "Đã ghi nhận tiến độ", nil)
}

// Mine trả về tiến độ của học sinh đang đăng nhập.
func (ctl *ProgressController) Mine(c *gin.Context) {
	progress, err := ctl.progress.ByUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"progress": progress})
}

// ByCourse trả về tiến độ mọi học sinh của một khóa cho giáo viên.
func (ctl *ProgressController) ByCourse(c *gin.Context) {
	progress, err := ctl.progress.ByCourse(c.Param("id"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"progress": progress})
}
