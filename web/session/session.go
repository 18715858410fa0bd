package session

import (
	"encoding/gob"

	"quizbank/config"
	"quizbank/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUser = "LOGIN_USER"
	invited   = "INVITED"
)

func init() {
	gob.Register(model.User{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUser, user)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: maxAge,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// SetInvited marks the session as having passed the invite gate.
func SetInvited(c *gin.Context) error {
	s := sessions.Default(c)
	s.Set(invited, true)
	return s.Save()
}

func IsInvited(c *gin.Context) bool {
	s := sessions.Default(c)
	if obj := s.Get(invited); obj != nil {
		if flag, ok := obj.(bool); ok {
			return flag
		}
	}
	return false
}

// ClearLoginUser removes only the identity binding, leaving the invite
// flag untouched so the caller stays past the gate.
func ClearLoginUser(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	return s.Save()
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(config.GetName(), "", -1, "/", "", false, true)
	return nil
}
