// Package controller provides the HTTP request handlers of the quizbank
// panel: the invite gate, login and registration, the owner-scoped
// question API and the admin API.
package controller

import (
	"net/http"

	"quizbank/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the gate middlewares shared by all controllers.
// The gate chain is always invite -> login -> admin; each stage
// short-circuits back to the earliest unmet stage instead of failing the
// whole request.
type BaseController struct{}

// checkLogin verifies the session identity binding and sends
// unauthenticated callers back to the login entry.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "login required")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// checkAdmin denies the operation for authenticated non-admin callers.
// The denial is Forbidden, not fatal: browser callers land back on the
// ordinary panel view.
func (a *BaseController) checkAdmin(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil || !user.IsAdmin {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusForbidden, false, "admin privilege required")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"panel/")
		}
		c.Abort()
	} else {
		c.Next()
	}
}
