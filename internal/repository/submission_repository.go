package repository

import (
	"fmt"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
)

const submissionsFile = "submissions.json"

type SubmissionRepository struct {
	store *Store
}

func NewSubmissionRepository(store *Store) *SubmissionRepository {
	return &SubmissionRepository{store: store}
}

func (r *SubmissionRepository) All() ([]model.ExerciseSubmission, error) {
	var list []model.ExerciseSubmission
	err := r.store.Load(submissionsFile, &list)
	return list, err
}

func (r *SubmissionRepository) ByUser(userID string) ([]model.ExerciseSubmission, error) {
	list, err := r.All()
	if err != nil {
		return nil, err
	}
	var mine []model.ExerciseSubmission
	for _, s := range list {
		if s.UserID == userID {
			mine = append(mine, s)
		}
	}
	return mine, nil
}

func (r *SubmissionRepository) ByCourses(courseIDs map[string]bool) ([]model.ExerciseSubmission, error) {
	list, err := r.All()
	if err != nil {
		return nil, err
	}
	var filtered []model.ExerciseSubmission
	for _, s := range list {
		if courseIDs[s.CourseID] {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (r *SubmissionRepository) Append(sub *model.ExerciseSubmission) error {
	var list []model.ExerciseSubmission
	return r.store.Update(submissionsFile, &list, func() (bool, error) {
		sub.ID = fmt.Sprintf("sub_%d", len(list)+1)
		if sub.SubmittedAt.IsZero() {
			sub.SubmittedAt = time.Now()
		}
		list = append(list, *sub)
		return true, nil
	})
}
