package service

import (
	"errors"
	"strings"

	"quizbank/database"
	"quizbank/database/model"
	"quizbank/logger"
	"quizbank/util/crypto"

	"github.com/xlzd/gotp"
	"gorm.io/gorm"
)

var (
	ErrMissingField       = errors.New("username and password are required")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService verifies credentials and manages self-service account
// operations. Secrets are stored as bcrypt hashes only.
type UserService struct {
	settingService SettingService
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser returns the matching user on success, nil otherwise. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *UserService) CheckUser(username string, password string, twoFactorCode string) *model.User {
	user, err := s.GetUserByUsername(username)
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two factor err:", err)
		return nil
	}

	if twoFactorEnable {
		twoFactorToken, err := s.settingService.GetTwoFactorToken()
		if err != nil {
			logger.Warning("check two factor token err:", err)
			return nil
		}

		if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
			return nil
		}
	}

	return user
}

// Register creates a new non-admin account. Both fields are trimmed first;
// empty input fails with ErrMissingField, an existing username with
// ErrDuplicateUsername.
func (s *UserService) Register(username string, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return ErrMissingField
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	return database.Tx(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(model.User{}).
			Where("username = ?", username).
			Count(&count).
			Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(&model.User{
			Username: username,
			Password: hash,
			IsAdmin:  false,
		}).Error
	})
}

// UpdateUser changes the username and secret of an existing account,
// rehashing the new secret.
func (s *UserService) UpdateUser(id int, username string, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return ErrMissingField
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	return database.Tx(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(model.User{}).
			Where("username = ? AND id != ?", username, id).
			Count(&count).
			Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Model(model.User{}).
			Where("id = ?", id).
			Updates(map[string]any{"username": username, "password": hash}).
			Error
	})
}
