package controller

import (
	"net/http"
	"strings"
	"text/template"

	"quizbank/logger"
	"quizbank/web/middleware"
	"quizbank/web/service"
	"quizbank/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const inviteMarkerMaxAge = 60 * 60 * 24 * 365 // durable marker lives ~1 year

// LoginForm represents the login request structure.
type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// GateForm carries a submitted invite code.
type GateForm struct {
	Code string `json:"code" form:"code"`
}

// IndexController handles the invite gate and the login, logout and
// registration routes.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)

	g.GET("/gate", a.gateEntry)
	g.POST("/gate", a.gate)
	g.POST("/getTwoFactorEnable", a.getTwoFactorEnable)

	// Identity routes sit behind the invite gate; the gate route itself
	// must stay reachable.
	invited := g.Group("/")
	invited.Use(middleware.InviteRequired())
	invited.POST("/login", a.login)
	invited.POST("/register", a.register)
}

// index reports the caller's gate state so the client can route to the
// earliest unmet stage: gate, then login, then the panel.
func (a *IndexController) index(c *gin.Context) {
	invited := session.IsInvited(c)
	if !invited {
		if marker, err := c.Cookie(middleware.InviteMarkerCookie); err == nil && marker != "" {
			invited = true
		}
	}

	state := gin.H{
		"invited":  invited,
		"loggedIn": false,
		"isAdmin":  false,
	}
	if user := session.GetLoginUser(c); user != nil {
		state["loggedIn"] = true
		state["isAdmin"] = user.IsAdmin
	}
	jsonObj(c, state, nil)
}

// gateEntry is where ungated callers are redirected to; it prompts for
// the invite code.
func (a *IndexController) gateEntry(c *gin.Context) {
	pureJsonMsg(c, http.StatusOK, false, "invite code required")
}

// gate compares the submitted code with the current invite code. A match
// sets the session flag and issues the durable marker cookie.
func (a *IndexController) gate(c *gin.Context) {
	var form GateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	inviteCode, err := a.settingService.GetInviteCode()
	if err != nil {
		jsonMsg(c, "get invite code", err)
		return
	}

	code := strings.TrimSpace(form.Code)
	if code == "" || code != inviteCode {
		logger.Warningf("wrong invite code from IP: \"%s\"", getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, "wrong invite code")
		return
	}

	if err := session.SetInvited(c); err != nil {
		jsonMsg(c, "save session", err)
		return
	}
	c.SetCookie(middleware.InviteMarkerCookie, uuid.NewString(), inviteMarkerMaxAge, "/", "", false, true)
	jsonMsg(c, "invite code accepted", nil)
}

// login handles user authentication and session creation.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, "username can not be empty")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "password can not be empty")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password, form.TwoFactorCode)
	safeUser := template.HTMLEscapeString(form.Username)

	if user == nil {
		logger.Warningf("wrong username: \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, service.ErrInvalidCredentials.Error())
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age from DB")
	}

	session.SetMaxAge(c, sessionMaxAge*60)
	session.SetLoginUser(c, user)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session: ", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", safeUser, getRemoteIp(c))
	jsonObj(c, gin.H{"isAdmin": user.IsAdmin}, nil)
}

// register creates a new non-admin identity.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	err := a.userService.Register(form.Username, form.Password)
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, err.Error())
		return
	}

	logger.Infof("new user registered: %s", template.HTMLEscapeString(strings.TrimSpace(form.Username)))
	jsonMsg(c, "registered", nil)
}

// logout clears only the identity binding; the invite gate pass survives
// in the session and the durable marker.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	if err := session.ClearLoginUser(c); err != nil {
		logger.Warning("Unable to save session after logout:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}

// getTwoFactorEnable retrieves the current status of two-factor authentication.
func (a *IndexController) getTwoFactorEnable(c *gin.Context) {
	status, err := a.settingService.GetTwoFactorEnable()
	if err == nil {
		jsonObj(c, status, nil)
	}
}

