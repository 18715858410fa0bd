package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListUsersIncludesSeededAdmin(t *testing.T) {
	setup(t)

	service := UserAdminService{}

	users, err := service.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.True(t, users[0].IsAdmin)
}

func TestDeleteUserCascades(t *testing.T) {
	setup(t)

	users := UserService{}
	questions := QuestionService{}
	service := UserAdminService{}

	assert.NoError(t, users.Register("a", "pw"))
	assert.NoError(t, users.Register("b", "pw"))

	id1, err := questions.AddQuestion("a", "", payload("p1"))
	assert.NoError(t, err)
	assert.Equal(t, 1, id1)
	id2, err := questions.AddQuestion("b", "", payload("p2"))
	assert.NoError(t, err)
	assert.Equal(t, 2, id2)

	listed, err := questions.GetQuestions("a", "")
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, id1, listed[0].Id)

	assert.NoError(t, service.DeleteUser("a"))

	// The identity is gone from the admin list.
	remaining, err := service.ListUsers()
	assert.NoError(t, err)
	for _, u := range remaining {
		assert.NotEqual(t, "a", u.Username)
	}

	// All of a's questions are gone; b's are untouched.
	listed, err = questions.GetQuestions("a", "")
	assert.NoError(t, err)
	assert.Empty(t, listed)

	others, err := service.GetUserQuestions("b")
	assert.NoError(t, err)
	assert.Len(t, others, 1)
	assert.Equal(t, id2, others[0].Id)
}

func TestToggleAdmin(t *testing.T) {
	setup(t)

	users := UserService{}
	service := UserAdminService{}

	assert.NoError(t, users.Register("alice", "pw"))

	assert.NoError(t, service.ToggleAdmin("alice"))
	user, err := users.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.True(t, user.IsAdmin)

	assert.NoError(t, service.ToggleAdmin("alice"))
	user, err = users.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.False(t, user.IsAdmin)

	// Unknown username is a no-op, not an error.
	assert.NoError(t, service.ToggleAdmin("nobody"))
}
