package service

import (
	"testing"

	"quizbank/util/crypto"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndCheckUser(t *testing.T) {
	setup(t)

	service := UserService{}

	assert.NoError(t, service.Register("alice", "secret123"))

	user, err := service.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.False(t, user.IsAdmin)
	// Only the hash is stored.
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, crypto.CheckPasswordHash(user.Password, "secret123"))

	assert.NotNil(t, service.CheckUser("alice", "secret123", ""))
	assert.Nil(t, service.CheckUser("alice", "wrong", ""))
	assert.Nil(t, service.CheckUser("nobody", "secret123", ""))
}

func TestRegisterValidation(t *testing.T) {
	setup(t)

	service := UserService{}

	tests := []struct {
		name     string
		username string
		password string
		expected error
	}{
		{"empty username", "", "pw", ErrMissingField},
		{"empty password", "alice", "", ErrMissingField},
		{"whitespace only", "   ", "  ", ErrMissingField},
		{"valid", "alice", "pw", nil},
		{"duplicate", "alice", "other", ErrDuplicateUsername},
		{"duplicate after trim", "  alice  ", "other", ErrDuplicateUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Register(tt.username, tt.password)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	setup(t)

	service := UserService{}

	assert.NoError(t, service.Register("alice", "old-secret"))
	user, err := service.GetUserByUsername("alice")
	assert.NoError(t, err)

	assert.NoError(t, service.UpdateUser(user.Id, "alice2", "new-secret"))

	assert.Nil(t, service.CheckUser("alice", "old-secret", ""))
	assert.Nil(t, service.CheckUser("alice2", "old-secret", ""))
	assert.NotNil(t, service.CheckUser("alice2", "new-secret", ""))

	// The new username must not collide with another account.
	assert.NoError(t, service.Register("bob", "pw"))
	bob, err := service.GetUserByUsername("bob")
	assert.NoError(t, err)
	assert.ErrorIs(t, service.UpdateUser(bob.Id, "alice2", "pw"), ErrDuplicateUsername)
}
