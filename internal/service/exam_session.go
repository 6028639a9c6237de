package service

import (
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

// AttemptState là trạng thái lượt làm bài tính từ mốc trong session.
type AttemptState struct {
	RemainingSeconds int
	Expired          bool
	// Restarted: mốc cũ hỏng hoặc lệch quá xa nên đã cấp mốc mới.
	Restarted bool
}

// ExamSessionService quản lý mốc thời gian làm bài giữ trong cookie phiên.
// Mốc là nguồn thời gian duy nhất: mọi phép tính còn lại/hết giờ đều do
// server thực hiện, không tin thời gian client khai.
type ExamSessionService struct {
	now func() time.Time
}

func NewExamSessionService() *ExamSessionService {
	return &ExamSessionService{now: time.Now}
}

// Begin đảm bảo có mốc làm bài hợp lệ cho đề này và trả về trạng thái lượt
// làm. Chưa có mốc thì cấp mốc mới với trọn thời gian; mốc hỏng (âm hoặc
// vượt quá 2 lần giới hạn) cũng cấp lại từ đầu: lệch đồng hồ hay cookie
// hỏng không được khóa vĩnh viễn học sinh khỏi đề. Đã hết giờ thì xóa mốc
// và báo Expired.
func (s *ExamSessionService) Begin(claims *util.SessionClaims, exam *model.Exam, grade string) AttemptState {
	limit := time.Duration(exam.TimeLimit) * time.Minute

	start, ok := claims.ExamStart(grade, exam.ID)
	if !ok {
		claims.SetExamStart(grade, exam.ID, s.now())
		return AttemptState{RemainingSeconds: int(limit.Seconds())}
	}

	elapsed := s.now().Sub(start)
	if elapsed < 0 || elapsed > 2*limit {
		claims.SetExamStart(grade, exam.ID, s.now())
		return AttemptState{RemainingSeconds: int(limit.Seconds()), Restarted: true}
	}
	if elapsed >= limit {
		claims.ClearExamStart(grade, exam.ID)
		return AttemptState{Expired: true}
	}

	return AttemptState{RemainingSeconds: remainingSeconds(limit, elapsed)}
}

// Remaining tính số giây còn lại cho endpoint polling, không cấp mốc mới.
func (s *ExamSessionService) Remaining(claims *util.SessionClaims, exam *model.Exam, grade string) (AttemptState, error) {
	limit := time.Duration(exam.TimeLimit) * time.Minute

	start, ok := claims.ExamStart(grade, exam.ID)
	if !ok {
		return AttemptState{}, util.ErrNoExamSession
	}

	elapsed := s.now().Sub(start)
	if elapsed < 0 || elapsed > 2*limit {
		claims.SetExamStart(grade, exam.ID, s.now())
		return AttemptState{RemainingSeconds: int(limit.Seconds()), Restarted: true}, nil
	}
	if elapsed >= limit {
		claims.ClearExamStart(grade, exam.ID)
		return AttemptState{Expired: true}, nil
	}

	return AttemptState{RemainingSeconds: remainingSeconds(limit, elapsed)}, nil
}

// Reset xóa mốc cũ và cấp mốc mới vô điều kiện.
func (s *ExamSessionService) Reset(claims *util.SessionClaims, exam *model.Exam, grade string) AttemptState {
	claims.ClearExamStart(grade, exam.ID)
	claims.SetExamStart(grade, exam.ID, s.now())
	return AttemptState{RemainingSeconds: exam.TimeLimit * 60}
}

// ValidateSubmission kiểm tra bài nộp còn trong giờ làm. Mốc bị xóa trong
// mọi nhánh: nộp muộn trả về ErrExamTimeExpired, nộp hợp lệ trả về thời
// gian đã dùng; lần nộp thứ hai của cùng lượt làm sẽ không còn mốc và bị
// từ chối như phiên hết hạn.
func (s *ExamSessionService) ValidateSubmission(claims *util.SessionClaims, exam *model.Exam, grade string) (int, error) {
	limit := time.Duration(exam.TimeLimit) * time.Minute

	start, ok := claims.ExamStart(grade, exam.ID)
	if !ok {
		return 0, util.ErrNoExamSession
	}
	claims.ClearExamStart(grade, exam.ID)

	elapsed := s.now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= limit {
		return 0, util.ErrExamTimeExpired
	}
	return int(elapsed.Seconds()), nil
}

// remainingSeconds chặn dưới 1 giây để client đang trong giờ không bao giờ
// thấy số 0.
func remainingSeconds(limit, elapsed time.Duration) int {
	remaining := int((limit - elapsed).Seconds())
	if remaining < 1 {
		remaining = 1
	}
	return remaining
}
