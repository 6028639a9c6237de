package service

import (
	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
)

// CourseProgress là tiến độ một khóa của một học sinh, kèm phần trăm.
type CourseProgress struct {
	CourseID         string   `json:"course_id"`
	CourseTitle      string   `json:"course_title"`
	CompletedLessons []string `json:"completed_lessons"`
	TotalLessons     int      `json:"total_lessons"`
	Percent          float64  `json:"percent"`
}

type ProgressService struct {
	progress *repository.ProgressRepository
	courses  *repository.CourseRepository
}

func NewProgressService(progress *repository.ProgressRepository, courses *repository.CourseRepository) *ProgressService {
	return &ProgressService{progress: progress, courses: courses}
}

// MarkLesson ghi nhận học sinh hoàn thành một bài học.
func (s *ProgressService) MarkLesson(userID, courseID, lessonID string) error {
	if _, err := s.courses.FindByID(courseID); err != nil {
		return err
	}
	return s.progress.MarkLesson(userID, courseID, lessonID, true)
}

// ByUser trả về tiến độ mọi khóa học sinh đã bắt đầu.
func (s *ProgressService) ByUser(userID string) ([]CourseProgress, error) {
	records, err := s.progress.ByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]CourseProgress, 0, len(records))
	for _, rec := range records {
		cp := CourseProgress{
			CourseID:         rec.CourseID,
			CompletedLessons: rec.CompletedLessons,
		}
		if course, err := s.courses.FindByID(rec.CourseID); err == nil {
			cp.CourseTitle = course.Title
			cp.TotalLessons = len(course.Lessons)
			cp.Percent = percent(len(rec.CompletedLessons), len(course.Lessons))
		}
		out = append(out, cp)
	}
	return out, nil
}

// ByCourse gom tiến độ mọi học sinh của một khóa cho trang theo dõi của
// giáo viên.
func (s *ProgressService) ByCourse(courseID string) ([]model.Progress, error) {
	all, err := s.progress.All()
	if err != nil {
		return nil, err
	}
	var matched []model.Progress
	for _, p := range all {
		if p.CourseID == courseID {
			matched = append(matched, p)
		}
	}
	if matched == nil {
		matched = []model.Progress{}
	}
	return matched, nil
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
