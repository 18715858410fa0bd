package service

import (
	"quizbank/database"
	"quizbank/database/model"

	"gorm.io/gorm"
)

// UserAdminService performs the cross-owner admin operations on accounts.
type UserAdminService struct{}

// UserDTO is the admin-facing account view. It never carries the secret
// hash.
type UserDTO struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func toDTO(u *model.User) UserDTO {
	return UserDTO{Id: u.Id, Username: u.Username, IsAdmin: u.IsAdmin}
}

func (s *UserAdminService) ListUsers() ([]UserDTO, error) {
	var users []model.User
	if err := database.GetDB().Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toDTO(&users[i]))
	}
	return out, nil
}

// GetUserQuestions is the read-only cross-owner view of one account's
// questions.
func (s *UserAdminService) GetUserQuestions(username string) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	err := database.GetDB().Model(model.Question{}).
		Where("owner = ?", username).
		Order("id ASC").
		Find(&questions).
		Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// DeleteUser removes the account and every question it owns in one
// transaction, so a concurrent create for the same owner can never land
// between the two deletes.
func (s *UserAdminService) DeleteUser(username string) error {
	return database.Tx(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", username).
			Delete(&model.User{}).
			Error
		if err != nil {
			return err
		}
		return tx.Where("owner = ?", username).
			Delete(&model.Question{}).
			Error
	})
}

// ToggleAdmin flips the admin flag on the matching account. An unknown
// username is a no-op.
func (s *UserAdminService) ToggleAdmin(username string) error {
	return database.Tx(func(tx *gorm.DB) error {
		user := &model.User{}
		err := tx.Model(model.User{}).
			Where("username = ?", username).
			First(user).
			Error
		if database.IsNotFound(err) {
			return nil
		} else if err != nil {
			return err
		}
		user.IsAdmin = !user.IsAdmin
		return tx.Save(user).Error
	})
}
