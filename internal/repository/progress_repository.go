package repository

import (
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
)

const progressFile = "progress.json"

type ProgressRepository struct {
	store *Store
}

func NewProgressRepository(store *Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

func (r *ProgressRepository) All() ([]model.Progress, error) {
	var list []model.Progress
	err := r.store.Load(progressFile, &list)
	return list, err
}

func (r *ProgressRepository) ByUser(userID string) ([]model.Progress, error) {
	list, err := r.All()
	if err != nil {
		return nil, err
	}
	var mine []model.Progress
	for _, p := range list {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (r *ProgressRepository) Find(userID, courseID string) (*model.Progress, error) {
	list, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].UserID == userID && list[i].CourseID == courseID {
			return &list[i], nil
		}
	}
	return nil, nil
}

// MarkLesson ghi nhận hoàn thành bài học; bản ghi tiến độ được tạo lười khi
// học sinh hoàn thành bài đầu tiên của khóa.
func (r *ProgressRepository) MarkLesson(userID, courseID, lessonID string, completed bool) error {
	var list []model.Progress
	return r.store.Update(progressFile, &list, func() (bool, error) {
		now := time.Now()
		for i := range list {
			if list[i].UserID == userID && list[i].CourseID == courseID {
				if completed && !contains(list[i].CompletedLessons, lessonID) {
					list[i].CompletedLessons = append(list[i].CompletedLessons, lessonID)
				}
				list[i].LastUpdated = now
				return true, nil
			}
		}
		p := model.Progress{
			UserID:           userID,
			CourseID:         courseID,
			CompletedLessons: []string{},
			LastUpdated:      now,
		}
		if completed {
			p.CompletedLessons = append(p.CompletedLessons, lessonID)
		}
		list = append(list, p)
		return true, nil
	})
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
