package service

import (
	"errors"
	"strconv"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"
)

// ExerciseResult là kết quả chấm nhanh bài luyện tập trong bài học, tính
// theo phần trăm chứ không theo thang 10 như đề thi.
type ExerciseResult struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

type ExerciseService struct {
	courses     *repository.CourseRepository
	submissions *repository.SubmissionRepository
}

func NewExerciseService(courses *repository.CourseRepository, submissions *repository.SubmissionRepository) *ExerciseService {
	return &ExerciseService{courses: courses, submissions: submissions}
}

// Submit lưu bài nộp và chấm nhanh theo câu hỏi gắn trong bài học. Khóa của
// map bài làm là chỉ số câu hỏi trong bài học.
func (s *ExerciseService) Submit(userID, courseID, lessonID string, answers map[string]string) (*ExerciseResult, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	var lesson *model.Lesson
	for i := range course.Lessons {
		if course.Lessons[i].ID == lessonID {
			lesson = &course.Lessons[i]
			break
		}
	}
	if lesson == nil {
		return nil, util.ErrNotFound
	}
	if len(lesson.Questions) == 0 {
		return nil, errors.New("bài học này không có câu hỏi luyện tập")
	}

	sub := &model.ExerciseSubmission{
		UserID:     userID,
		CourseID:   courseID,
		ExerciseID: lessonID,
		Answers:    answers,
	}
	if err := s.submissions.Append(sub); err != nil {
		return nil, err
	}

	correct := 0
	for i, q := range lesson.Questions {
		submitted := util.NormalizeAnswerToken(answers[strconv.Itoa(i)])
		if submitted != "" && util.NormalizeAnswerSet(q.CorrectAnswer)[submitted] {
			correct++
		}
	}

	total := len(lesson.Questions)
	return &ExerciseResult{
		Correct: correct,
		Total:   total,
		Percent: roundScore(float64(correct) / float64(total) * 100),
	}, nil
}

// ByUser trả về các bài nộp của một học sinh.
func (s *ExerciseService) ByUser(userID string) ([]model.ExerciseSubmission, error) {
	subs, err := s.submissions.ByUser(userID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.ExerciseSubmission{}
	}
	return subs, nil
}

// ByTeacher trả về các bài nộp thuộc những khóa học của một giáo viên.
func (s *ExerciseService) ByTeacher(teacherID string) ([]model.ExerciseSubmission, error) {
	courses, err := s.courses.FindByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(courses))
	for _, c := range courses {
		ids[c.ID] = true
	}
	subs, err := s.submissions.ByCourses(ids)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.ExerciseSubmission{}
	}
	return subs, nil
}
