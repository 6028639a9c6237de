package repository

import (
	"strconv"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

const usersFile = "users.json"

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) All() ([]model.User, error) {
	var users []model.User
	err := r.store.Load(usersFile, &users)
	return users, err
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	users, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	users, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, util.ErrNotFound
}

// Create kiểm tra trùng username/email và cấp ID trong cùng một khóa ghi.
func (r *UserRepository) Create(user *model.User) error {
	var users []model.User
	return r.store.Update(usersFile, &users, func() (bool, error) {
		for _, u := range users {
			if u.Username == user.Username {
				return false, util.ErrUsernameTaken
			}
			if u.Email == user.Email {
				return false, util.ErrEmailTaken
			}
		}
		user.ID = strconv.Itoa(len(users) + 1)
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now()
		}
		users = append(users, *user)
		return true, nil
	})
}
