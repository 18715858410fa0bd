package service

import (
	"strconv"
	"strings"
	"time"

	"quizbank/database"
	"quizbank/database/model"
	"quizbank/util/common"
	"quizbank/util/random"
	"quizbank/web/entity"

	"gorm.io/gorm"
)

var defaultValueMap = map[string]string{
	"webListen":       "",
	"webDomain":       "",
	"webPort":         "5000",
	"secret":          random.Seq(32),
	"webBasePath":     "/",
	"sessionMaxAge":   "60",
	"timeLocation":    "Local",
	"inviteCode":      "RYUKYU2025",
	"twoFactorEnable": "false",
	"twoFactorToken":  "",
}

// SettingService reads and writes the key/value settings table, falling
// back to defaultValueMap for keys that were never written.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	return database.Tx(func(tx *gorm.DB) error {
		setting := &model.Setting{}
		err := tx.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
		if database.IsNotFound(err) {
			return tx.Create(&model.Setting{
				Key:   key,
				Value: value,
			}).Error
		} else if err != nil {
			return err
		}
		setting.Value = value
		return tx.Save(setting).Error
	})
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) SetListen(ip string) error {
	return s.setString("webListen", ip)
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

// GetSecret returns the cookie-store signing secret, generating and
// persisting one on first use.
func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return nil, err
	}
	if saveErr := s.saveSetting("secret", secret); saveErr != nil {
		return nil, saveErr
	}
	return []byte(secret), nil
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, err = time.LoadLocation(defaultLocation)
	}
	return location, err
}

// GetInviteCode returns the current invite code the gate compares against.
func (s *SettingService) GetInviteCode() (string, error) {
	return s.getString("inviteCode")
}

// SetInviteCode replaces the invite code. Last writer wins under
// concurrent admin updates; markers issued under the old code stay valid.
func (s *SettingService) SetInviteCode(code string) error {
	return s.setString("inviteCode", code)
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(value bool) error {
	return s.setBool("twoFactorEnable", value)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(token string) error {
	return s.setString("twoFactorToken", token)
}

// GetAllSetting collects the tunable settings into one entity for the
// admin settings view.
func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	allSetting := &entity.AllSetting{}
	var err error

	if allSetting.WebListen, err = s.GetListen(); err != nil {
		return nil, err
	}
	if allSetting.WebDomain, err = s.GetWebDomain(); err != nil {
		return nil, err
	}
	if allSetting.WebPort, err = s.GetPort(); err != nil {
		return nil, err
	}
	if allSetting.WebBasePath, err = s.GetBasePath(); err != nil {
		return nil, err
	}
	if allSetting.SessionMaxAge, err = s.GetSessionMaxAge(); err != nil {
		return nil, err
	}
	if allSetting.TimeLocation, err = s.getString("timeLocation"); err != nil {
		return nil, err
	}
	if allSetting.TwoFactorEnable, err = s.GetTwoFactorEnable(); err != nil {
		return nil, err
	}
	if allSetting.TwoFactorToken, err = s.GetTwoFactorToken(); err != nil {
		return nil, err
	}

	return allSetting, nil
}

// UpdateAllSetting validates and persists the settings entity.
func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}

	return common.Combine(
		s.setString("webListen", allSetting.WebListen),
		s.setString("webDomain", allSetting.WebDomain),
		s.setInt("webPort", allSetting.WebPort),
		s.setString("webBasePath", allSetting.WebBasePath),
		s.setInt("sessionMaxAge", allSetting.SessionMaxAge),
		s.setString("timeLocation", allSetting.TimeLocation),
		s.setBool("twoFactorEnable", allSetting.TwoFactorEnable),
		s.setString("twoFactorToken", allSetting.TwoFactorToken),
	)
}
