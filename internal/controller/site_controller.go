package controller

import (
	"time"

	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

// SiteController phục vụ các endpoint chung của trang: health check và
// thống kê hiển thị trên trang chủ.
type SiteController struct {
	courses   *service.CourseService
	documents *service.DocumentService
	startedAt time.Time
}

func NewSiteController(courses *service.CourseService, documents *service.DocumentService) *SiteController {
	return &SiteController{courses: courses, documents: documents, startedAt: time.Now()}
}

func (ctl *SiteController) Health(c *gin.Context) {
	util.Success(c, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(ctl.startedAt).Seconds()),
	})
}

// Stats trả về các con số tổng hợp cho trang chủ.
func (ctl *SiteController) Stats(c *gin.Context) {
	courses, err := ctl.courses.List()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	documents, err := ctl.documents.List("", "")
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	lessons := 0
	for _, course := range courses {
		lessons += len(course.Lessons)
	}

	util.Success(c, gin.H{
		"courses":   len(courses),
		"lessons":   lessons,
		"documents": len(documents),
	})
}
