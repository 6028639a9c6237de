package service

import (
	"errors"
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"

	"go.uber.org/zap"
)

type CourseService struct {
	courses *repository.CourseRepository
	users   *repository.UserRepository
	logger  *zap.Logger
}

func NewCourseService(courses *repository.CourseRepository, users *repository.UserRepository, logger *zap.Logger) *CourseService {
	return &CourseService{courses: courses, users: users, logger: logger}
}

// List trả về mọi khóa học kèm tên giáo viên tra từ file người dùng.
func (s *CourseService) List() ([]model.Course, error) {
	courses, err := s.courses.All()
	if err != nil {
		return nil, err
	}
	if err := s.fillTeacherNames(courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	if teacher, err := s.users.FindByID(course.TeacherID); err == nil {
		course.TeacherName = teacher.Username
	}
	return course, nil
}

func (s *CourseService) ByTeacher(teacherID string) ([]model.Course, error) {
	courses, err := s.courses.FindByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// Create thêm khóa học mới; mỗi giáo viên không được có hai khóa trùng tên.
func (s *CourseService) Create(teacher *model.User, title, description string, lessons []model.Lesson) (*model.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("vui lòng nhập tên khóa học")
	}

	existing, err := s.courses.FindByTeacher(teacher.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Title, title) {
			return nil, util.ErrDuplicateCourse
		}
	}

	course := &model.Course{
		TeacherID:   teacher.ID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Lessons:     lessons,
	}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}

	s.logger.Info("khóa học mới", zap.String("course_id", course.ID), zap.String("teacher_id", teacher.ID))
	return course, nil
}

// Update sửa khóa học, chỉ giáo viên sở hữu mới được sửa.
func (s *CourseService) Update(teacher *model.User, id, title, description string, lessons []model.Lesson) error {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return err
	}
	if course.TeacherID != teacher.ID {
		return util.ErrPermissionDenied
	}

	return s.courses.Update(id, func(c *model.Course) {
		if strings.TrimSpace(title) != "" {
			c.Title = strings.TrimSpace(title)
		}
		c.Description = strings.TrimSpace(description)
		if lessons != nil {
			c.Lessons = lessons
		}
	})
}

func (s *CourseService) Delete(teacher *model.User, id string) error {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return err
	}
	if course.TeacherID != teacher.ID {
		return util.ErrPermissionDenied
	}
	return s.courses.Delete(id)
}

func (s *CourseService) fillTeacherNames(courses []model.Course) error {
	users, err := s.users.All()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	for i := range courses {
		courses[i].TeacherName = names[courses[i].TeacherID]
	}
	return nil
}
