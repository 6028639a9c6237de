package repository

import (
	"fmt"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

const coursesFile = "courses.json"

type CourseRepository struct {
	store *Store
}

func NewCourseRepository(store *Store) *CourseRepository {
	return &CourseRepository{store: store}
}

func (r *CourseRepository) All() ([]model.Course, error) {
	var courses []model.Course
	err := r.store.Load(coursesFile, &courses)
	return courses, err
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	courses, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i], nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *CourseRepository) FindByTeacher(teacherID string) ([]model.Course, error) {
	courses, err := r.All()
	if err != nil {
		return nil, err
	}
	var mine []model.Course
	for _, c := range courses {
		if c.TeacherID == teacherID {
			mine = append(mine, c)
		}
	}
	return mine, nil
}

func (r *CourseRepository) Create(course *model.Course) error {
	var courses []model.Course
	return r.store.Update(coursesFile, &courses, func() (bool, error) {
		course.ID = fmt.Sprintf("course_%d", len(courses)+1)
		course.CreatedAt = time.Now()
		if course.Lessons == nil {
			course.Lessons = []model.Lesson{}
		}
		courses = append(courses, *course)
		return true, nil
	})
}

// Update tải khóa học, đưa cho fn sửa tại chỗ rồi ghi lại.
func (r *CourseRepository) Update(id string, fn func(*model.Course)) error {
	var courses []model.Course
	return r.store.Update(coursesFile, &courses, func() (bool, error) {
		for i := range courses {
			if courses[i].ID == id {
				fn(&courses[i])
				now := time.Now()
				courses[i].UpdatedAt = &now
				return true, nil
			}
		}
		return false, util.ErrNotFound
	})
}

func (r *CourseRepository) Delete(id string) error {
	var courses []model.Course
	return r.store.Update(coursesFile, &courses, func() (bool, error) {
		kept := courses[:0]
		found := false
		for _, c := range courses {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			return false, util.ErrNotFound
		}
		courses = kept
		return true, nil
	})
}
