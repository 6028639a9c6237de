package controller

import (
	"errors"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	courses  *service.CourseService
	progress *service.ProgressService
	auth     *service.AuthService
}

func NewCourseController(courses *service.CourseService, progress *service.ProgressService, auth *service.AuthService) *CourseController {
	return &CourseController{courses: courses, progress: progress, auth: auth}
}

// List trả về mọi khóa học cho trang danh sách.
func (ctl *CourseController) List(c *gin.Context) {
	courses, err := ctl.courses.List()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"courses": courses})
}

// Detail trả về một khóa học, kèm tiến độ của học sinh đang xem.
func (ctl *CourseController) Detail(c *gin.Context) {
	course, err := ctl.courses.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy khóa học")
			return
		}
		util.LogInternalError(c, err)
		return
	}

	payload := gin.H{"course": course}
	claims := util.GetSession(c)
	if claims.Role == model.Student {
		progress, err := ctl.progress.ByUser(claims.UserID)
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		for _, p := range progress {
			if p.CourseID == course.ID {
				payload["progress"] = p
				break
			}
		}
	}
	util.Success(c, payload)
}

type courseRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Lessons     []model.Lesson `json:"lessons"`
}

// Create xử lý POST /api/teacher/courses.
func (ctl *CourseController) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Dữ liệu khóa học không hợp lệ")
		return
	}

	teacher, err := ctl.auth.GetUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	course, err := ctl.courses.Create(teacher, req.Title, req.Description, req.Lessons)
	if err != nil {
		if errors.Is(err, util.ErrDuplicateCourse) {
			util.BadRequest(c, err.Error())
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.SuccessMessage(c, "Đã tạo khóa học", gin.H{"course": course})
}

// Update xử lý PUT /api/teacher/courses/:id.
func (ctl *CourseController) Update(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Dữ liệu khóa học không hợp lệ")
		return
	}

	teacher, err := ctl.auth.GetUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	if err := ctl.courses.Update(teacher, c.Param("id"), req.Title, req.Description, req.Lessons); err != nil {
		respondCourseError(c, err)
		return
	}
	util.SuccessMessage(c, "Đã cập nhật khóa học", nil)
}

// Delete xử lý DELETE /api/teacher/courses/:id.
func (ctl *CourseController) Delete(c *gin.Context) {
	teacher, err := ctl.auth.GetUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	if err := ctl.courses.Delete(teacher, c.Param("id")); err != nil {
		respondCourseError(c, err)
		return
	}
	util.SuccessMessage(c, "Đã xóa khóa học", nil)
}

// MyCourses trả về các khóa của giáo viên đang đăng nhập.
func (ctl *CourseController) MyCourses(c *gin.Context) {
	courses, err := ctl.courses.ByTeacher(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"courses": courses})
}

func respondCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(c, "Không tìm thấy khóa học")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
