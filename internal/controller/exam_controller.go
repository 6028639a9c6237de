package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"
	"github.com/tuanminh7/website-lms/pkg/docx"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	exams *service.ExamService
	auth  *service.AuthService
	cfg   *config.Config
}

func NewExamController(exams *service.ExamService, auth *service.AuthService, cfg *config.Config) *ExamController {
	return &ExamController{exams: exams, auth: auth, cfg: cfg}
}

// List xử lý GET /api/exams/:grade: danh sách đề của một khối.
func (ctl *ExamController) List(c *gin.Context) {
	grade := c.Param("grade")
	if !repository.IsSupportedGrade(grade) {
		util.BadRequest(c, "Khối lớp không hợp lệ, chỉ nhận 10, 11, 12")
		return
	}

	exams, err := ctl.exams.ListByGrade(grade)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"exams": exams})
}

// Import xử lý POST /api/teacher/exams: nhập đề từ file Word. File được lưu
// lại trong thư mục đề thi rồi mới đọc; lỗi đọc đề trả nguyên thông báo của
// bộ phân tích để giáo viên biết câu nào hỏng.
func (ctl *ExamController) Import(c *gin.Context) {
	grade := c.PostForm("grade")
	title := c.PostForm("title")
	description := c.PostForm("description")
	timeLimit, _ := strconv.Atoi(c.PostForm("time_limit"))

	fh, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "Vui lòng chọn file đề thi")
		return
	}
	if !util.AllowedExamFile(fh.Filename) {
		util.BadRequest(c, "Đề thi chỉ nhận file .docx")
		return
	}
	if fh.Size > ctl.cfg.Upload.MaxFileSize {
		util.BadRequest(c, "File đề thi vượt quá dung lượng cho phép")
		return
	}

	saved := filepath.Join(ctl.cfg.Upload.ExamDir, util.UniqueFilename(fh.Filename))
	if err := c.SaveUploadedFile(fh, saved); err != nil {
		util.LogInternalError(c, err)
		return
	}

	paragraphs, err := docx.Open(saved)
	if err != nil {
		os.Remove(saved)
		util.BadRequest(c, "Không đọc được file đề thi, vui lòng kiểm tra định dạng")
		return
	}

	teacher, err := ctl.auth.GetUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	exam, err := ctl.exams.Import(teacher, grade, title, description, timeLimit, paragraphs)
	if err != nil {
		os.Remove(saved)
		var parseErr *service.ExamParseError
		if errors.As(err, &parseErr) {
			util.BadRequest(c, "Lỗi đọc đề: "+parseErr.Error())
			return
		}
		util.BadRequest(c, err.Error())
		return
	}

	util.SuccessMessage(c, "Đã nhập đề thi", gin.H{
		"exam": gin.H{
			"id":                     exam.ID,
			"title":                  exam.Title,
			"question_count":         len(exam.Questions),
			"time_limit":             exam.TimeLimit,
			"allow_multiple_answers": exam.AllowMultipleAnswers,
		},
	})
}

// Delete xử lý DELETE /api/teacher/exams/:grade/:id, dọn cả kết quả đã nộp.
func (ctl *ExamController) Delete(c *gin.Context) {
	grade := c.Param("grade")
	if !repository.IsSupportedGrade(grade) {
		util.BadRequest(c, "Khối lớp không hợp lệ, chỉ nhận 10, 11, 12")
		return
	}

	teacher, err := ctl.auth.GetUser(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	if err := ctl.exams.Delete(teacher, grade, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(c, "Không tìm thấy đề thi")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.SuccessMessage(c, "Đã xóa đề thi", nil)
}

// MyExams xử lý GET /api/teacher/exams: đề của giáo viên nhóm theo khối.
func (ctl *ExamController) MyExams(c *gin.Context) {
	exams, err := ctl.exams.ByTeacher(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"exams": exams})
}

// Start xử lý POST /api/exams/:grade/:id/start: mở lượt làm bài. Đề trả về
// đã giấu đáp án và lời giải. Mốc thời gian thay đổi nên cookie phiên được
// ghi lại.
func (ctl *ExamController) Start(c *gin.Context) {
	grade := c.Param("grade")
	if !repository.IsSupportedGrade(grade) {
		util.BadRequest(c, "Khối lớp không hợp lệ, chỉ nhận 10, 11, 12")
		return
	}

	claims := util.GetSession(c)
	view, state, err := ctl.exams.Start(claims, grade, c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy đề thi")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	if err := util.SaveSession(c, claims, ctl.cfg); err != nil {
		util.LogInternalError(c, err)
		return
	}

	if state.Expired {
		util.Success(c, gin.H{
			"is_expired": true,
			"message":    "Đã hết thời gian làm bài",
		})
		return
	}

	util.Success(c, gin.H{
		"exam":              view,
		"remaining_seconds": state.RemainingSeconds,
		"restarted":         state.Restarted,
	})
}

// Remaining xử lý GET /api/exams/:grade/:id/remaining: endpoint polling số
// giây còn lại.
func (ctl *ExamController) Remaining(c *gin.Context) {
	claims := util.GetSession(c)
	state, err := ctl.exams.RemainingTime(claims, c.Param("grade"), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoExamSession):
			util.BadRequest(c, err.Error())
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(c, "Không tìm thấy đề thi")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	if err := util.SaveSession(c, claims, ctl.cfg); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"remaining_seconds": state.RemainingSeconds,
		"is_expired":        state.Expired,
		"restarted":         state.Restarted,
	})
}

// Reset xử lý POST /api/exams/:grade/:id/reset: hủy lượt làm và cấp lượt
// mới vô điều kiện.
func (ctl *ExamController) Reset(c *gin.Context) {
	claims := util.GetSession(c)
	state, err := ctl.exams.Reset(claims, c.Param("grade"), c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(c, "Không tìm thấy đề thi")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	if err := util.SaveSession(c, claims, ctl.cfg); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.SuccessMessage(c, "Đã làm mới thời gian làm bài", gin.H{
		"remaining_seconds": state.RemainingSeconds,
	})
}

type examSubmitRequest struct {
	Answers map[string]model.SubmittedAnswer `json:"answers" binding:"required"`
}

// Submit xử lý POST /api/exams/:grade/:id/submit: chấm bài và trả kết quả
// kèm phần chữa những câu chưa trọn điểm. Nộp muộn hoặc nộp lại bị từ chối.
func (ctl *ExamController) Submit(c *gin.Context) {
	grade := c.Param("grade")
	if !repository.IsSupportedGrade(grade) {
		util.BadRequest(c, "Khối lớp không hợp lệ, chỉ nhận 10, 11, 12")
		return
	}

	var req examSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Dữ liệu bài làm không hợp lệ")
		return
	}

	claims := util.GetSession(c)
	result, err := ctl.exams.Submit(claims, grade, c.Param("id"), req.Answers)

	// Mốc làm bài bị xóa trong cả nhánh thành công lẫn nộp muộn, cookie
	// phải được ghi lại trước khi trả lời.
	if saveErr := util.SaveSession(c, claims, ctl.cfg); saveErr != nil {
		util.LogInternalError(c, saveErr)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoExamSession), errors.Is(err, util.ErrExamTimeExpired):
			util.BadRequest(c, err.Error())
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(c, "Không tìm thấy đề thi")
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.SuccessMessage(c, "Đã nộp bài", gin.H{"result": result})
}

// History xử lý GET /api/exams/history: lịch sử làm bài của học sinh.
func (ctl *ExamController) History(c *gin.Context) {
	results, err := ctl.exams.History(util.GetSession(c).UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"results": results})
}

// LatestResult xử lý GET /api/exams/:grade/:id/result: lần nộp gần nhất.
func (ctl *ExamController) LatestResult(c *gin.Context) {
	result, err := ctl.exams.LatestResult(util.GetSession(c).UserID, c.Param("grade"), c.Param("id"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	if result == nil {
		util.NotFound(c, "Bạn chưa làm đề thi này")
		return
	}
	util.Success(c, gin.H{"result": result})
}
