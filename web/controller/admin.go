package controller

import (
	"strconv"

	"quizbank/web/service"

	"github.com/gin-gonic/gin"
)

// CategoryRenameForm carries a cross-owner category rename request.
type CategoryRenameForm struct {
	Old string `json:"old" form:"old"`
	New string `json:"new" form:"new"`
}

// CategoryDeleteForm names the category to clear to uncategorized.
type CategoryDeleteForm struct {
	Category string `json:"category" form:"category"`
}

// InviteCodeForm carries a new invite code.
type InviteCodeForm struct {
	InviteCode string `json:"inviteCode" form:"inviteCode"`
}

// AdminController handles the cross-owner admin operations: account
// management, global category management, invite code management and the
// server status view.
type AdminController struct {
	userAdminService service.UserAdminService
	categoryService  service.CategoryService
	settingService   service.SettingService
	serverService    service.ServerService
}

// NewAdminController creates a new AdminController and sets up its routes.
func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g.GET("/users", a.getUsers)
	g.GET("/users/:username/questions", a.getUserQuestions)
	g.POST("/users/:username/del", a.delUser)
	g.POST("/users/:username/toggleAdmin", a.toggleAdmin)

	g.GET("/categories", a.getCategories)
	g.POST("/categories/rename", a.renameCategory)
	g.POST("/categories/del", a.delCategory)

	g.GET("/invite", a.getInviteCode)
	g.POST("/invite", a.setInviteCode)

	g.GET("/status", a.status)
	g.GET("/logs/:count", a.getLogs)
}

// getUsers lists all identities without their secret hashes.
func (a *AdminController) getUsers(c *gin.Context) {
	users, err := a.userAdminService.ListUsers()
	if err != nil {
		jsonMsg(c, "obtain users", err)
		return
	}
	jsonObj(c, users, nil)
}

// getUserQuestions is the read-only cross-owner view of one identity's
// questions.
func (a *AdminController) getUserQuestions(c *gin.Context) {
	questions, err := a.userAdminService.GetUserQuestions(c.Param("username"))
	if err != nil {
		jsonMsg(c, "obtain user questions", err)
		return
	}
	jsonObj(c, questions, nil)
}

// delUser removes the identity and all questions it owns.
func (a *AdminController) delUser(c *gin.Context) {
	username := c.Param("username")
	if err := a.userAdminService.DeleteUser(username); err != nil {
		jsonMsg(c, "delete user", err)
		return
	}
	jsonMsg(c, "user deleted", nil)
}

// toggleAdmin flips the admin flag on the named identity.
func (a *AdminController) toggleAdmin(c *gin.Context) {
	if err := a.userAdminService.ToggleAdmin(c.Param("username")); err != nil {
		jsonMsg(c, "toggle admin", err)
		return
	}
	jsonMsg(c, "admin flag toggled", nil)
}

// getCategories lists every stored category across all owners.
func (a *AdminController) getCategories(c *gin.Context) {
	categories, err := a.categoryService.CategoriesGlobal()
	if err != nil {
		jsonMsg(c, "obtain categories", err)
		return
	}
	jsonObj(c, categories, nil)
}

// renameCategory rewrites a category on every owner's questions.
func (a *AdminController) renameCategory(c *gin.Context) {
	var form CategoryRenameForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "rename category", err)
		return
	}
	if err := a.categoryService.RenameCategory(form.Old, form.New); err != nil {
		jsonMsg(c, "rename category", err)
		return
	}
	jsonMsg(c, "category renamed", nil)
}

// delCategory reassigns every matching question to uncategorized.
func (a *AdminController) delCategory(c *gin.Context) {
	var form CategoryDeleteForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "delete category", err)
		return
	}
	if err := a.categoryService.DeleteCategory(form.Category); err != nil {
		jsonMsg(c, "delete category", err)
		return
	}
	jsonMsg(c, "category deleted", nil)
}

// getInviteCode returns the current invite code.
func (a *AdminController) getInviteCode(c *gin.Context) {
	code, err := a.settingService.GetInviteCode()
	if err != nil {
		jsonMsg(c, "get invite code", err)
		return
	}
	jsonObj(c, gin.H{"inviteCode": code}, nil)
}

// setInviteCode replaces the invite code; last writer wins.
func (a *AdminController) setInviteCode(c *gin.Context) {
	var form InviteCodeForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "set invite code", err)
		return
	}
	if err := a.settingService.SetInviteCode(form.InviteCode); err != nil {
		jsonMsg(c, "set invite code", err)
		return
	}
	jsonMsg(c, "invite code updated", nil)
}

// status reports host metrics for the admin view.
func (a *AdminController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

// getLogs returns recent buffered log lines.
func (a *AdminController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		jsonMsg(c, "get logs", err)
		return
	}
	jsonObj(c, a.serverService.GetLogs(count, c.DefaultQuery("level", "INFO")), nil)
}
