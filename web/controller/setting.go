package controller

import (
	"quizbank/web/entity"
	"quizbank/web/service"
	"quizbank/web/session"

	"github.com/gin-gonic/gin"
)

// UpdateUserForm carries a self-service username/secret change.
type UpdateUserForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SettingController handles the admin settings view and the self-service
// account update.
type SettingController struct {
	settingService service.SettingService
	userService    service.UserService
}

// NewSettingController creates a new SettingController. Settings routes go
// on the admin group; the self-service account update stays available to
// every logged-in user on the panel group.
func NewSettingController(adminG *gin.RouterGroup, panelG *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(adminG, panelG)
	return a
}

func (a *SettingController) initRouter(adminG *gin.RouterGroup, panelG *gin.RouterGroup) {
	g := adminG.Group("/setting")
	g.POST("/all", a.getAllSetting)
	g.POST("/update", a.updateSetting)

	panelG.POST("/setting/updateUser", a.updateUser)
}

func (a *SettingController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	if err != nil {
		jsonMsg(c, "obtain settings", err)
		return
	}
	jsonObj(c, allSetting, nil)
}

func (a *SettingController) updateSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		jsonMsg(c, "update settings", err)
		return
	}
	if err := a.settingService.UpdateAllSetting(allSetting); err != nil {
		jsonMsg(c, "update settings", err)
		return
	}
	jsonMsg(c, "settings updated", nil)
}

// updateUser changes the logged-in user's own username and secret, then
// refreshes the session binding.
func (a *SettingController) updateUser(c *gin.Context) {
	var form UpdateUserForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "update user", err)
		return
	}
	user := session.GetLoginUser(c)
	if err := a.userService.UpdateUser(user.Id, form.Username, form.Password); err != nil {
		jsonMsg(c, "update user", err)
		return
	}
	updated, err := a.userService.GetUserByUsername(form.Username)
	if err == nil {
		session.SetLoginUser(c, updated)
	}
	jsonMsg(c, "user updated", nil)
}
