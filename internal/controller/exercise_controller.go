package controller

import (
	"errors"

	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	exercises *service.ExerciseService
}

func NewExerciseController(exercises *service.ExerciseService) *ExerciseController {
	return &ExerciseController{exercises: exercises}
}

type exerciseSubmitRequest struct {
	CourseID string            `json:"course_id" binding:"required"`
	LessonID string            `json:"lesson_id" binding:"required"`
	Answers  map[string]string `json:"answers" binding:"required"`
}

// Submit xử lý POST /api/exercises/submit: chấm nhanh bài luyện tập.
func (ctl *ExerciseController) Submit(c *gin.Context) {
	var req exerciseSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Thiếu thông tin bài nộp")
		return
	}

	claims := util.GetSession(c)
	result, err := ctl.exercises.Submit(claims.UserID, req.CourseID, req.LessonID, req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy bài học")
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, gin.H{"result": result})
}

// Mine trả về các bài nộp của học sinh đang đăng nhập.
func (ctl *ExerciseController) Mine(c *gin.Context) {
	subs, err := ctl.exercises.ByUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"submissions": subs})
}

// ByTeacher trả về bài nộp thuộc các khóa của giáo viên đang đăng nhập.
func (ctl *ExerciseController) ByTeacher(c *gin.Context) {
	subs, err := ctl.exercises.ByTeacher(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"submissions": subs})
}
