package controller

import (
	"quizbank/web/middleware"
	"quizbank/web/session"

	"github.com/gin-gonic/gin"
)

// PanelController groups everything behind the full gate chain. The
// question API requires invite + login; the admin API additionally
// requires the admin flag.
type PanelController struct {
	BaseController

	questionController *QuestionController
	adminController    *AdminController
	settingController  *SettingController
}

// NewPanelController creates a new PanelController and initializes its routes.
func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")
	g.Use(middleware.InviteRequired(), a.checkLogin)

	g.GET("/", a.index)

	a.questionController = NewQuestionController(g)

	admin := g.Group("/admin")
	admin.Use(a.checkAdmin)
	a.adminController = NewAdminController(admin)
	a.settingController = NewSettingController(admin, g)
}

// index reports the logged-in user so the client can pick the user or
// admin view.
func (a *PanelController) index(c *gin.Context) {
	user := session.GetLoginUser(c)
	jsonObj(c, gin.H{
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
	}, nil)
}
