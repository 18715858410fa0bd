package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInviteCode(t *testing.T) {
	setup(t)

	service := SettingService{}

	// Default code before any admin ever set one.
	code, err := service.GetInviteCode()
	assert.NoError(t, err)
	assert.Equal(t, "RYUKYU2025", code)

	assert.NoError(t, service.SetInviteCode("NEWCODE"))
	code, err = service.GetInviteCode()
	assert.NoError(t, err)
	assert.Equal(t, "NEWCODE", code)

	// Last writer wins.
	assert.NoError(t, service.SetInviteCode("FINAL"))
	code, err = service.GetInviteCode()
	assert.NoError(t, err)
	assert.Equal(t, "FINAL", code)
}

func TestAllSettingRoundTrip(t *testing.T) {
	setup(t)

	service := SettingService{}

	allSetting, err := service.GetAllSetting()
	assert.NoError(t, err)
	assert.Equal(t, 5000, allSetting.WebPort)
	assert.Equal(t, "/", allSetting.WebBasePath)

	allSetting.WebPort = 8080
	allSetting.SessionMaxAge = 120
	assert.NoError(t, service.UpdateAllSetting(allSetting))

	updated, err := service.GetAllSetting()
	assert.NoError(t, err)
	assert.Equal(t, 8080, updated.WebPort)
	assert.Equal(t, 120, updated.SessionMaxAge)
}

func TestAllSettingRejectsInvalid(t *testing.T) {
	setup(t)

	service := SettingService{}

	allSetting, err := service.GetAllSetting()
	assert.NoError(t, err)

	allSetting.WebPort = -1
	assert.Error(t, service.UpdateAllSetting(allSetting))

	allSetting.WebPort = 8080
	allSetting.WebListen = "not-an-ip"
	assert.Error(t, service.UpdateAllSetting(allSetting))
}
