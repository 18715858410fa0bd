package model

import (
	"quizbank/util/json_util"
)

// User is an account identity. Password stores only the bcrypt hash of the
// secret, never the raw value.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"column:password"`
	IsAdmin  bool   `json:"isAdmin" gorm:"column:is_admin;default:false"`
}

// Question is an owner-scoped quiz question. Id is minted by the store and
// never reused for a different owner; Owner always comes from the
// authenticated session, never from the request body. An empty Category
// means the question is uncategorized.
type Question struct {
	Id       int                  `json:"id" gorm:"primaryKey"`
	Owner    string               `json:"owner" gorm:"index;not null"`
	Category string               `json:"category" gorm:"index;default:''"`
	Payload  json_util.RawMessage `json:"payload" gorm:"type:text"`
}

// Setting is a key/value row for runtime-tunable panel settings, including
// the invite code.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex"`
	Value string `json:"value" form:"value"`
}
