package controller

import (
	"net/http"
	"strconv"

	"quizbank/database"
	"quizbank/util/json_util"
	"quizbank/web/service"
	"quizbank/web/session"

	"github.com/gin-gonic/gin"
)

// QuestionForm carries the caller-editable part of a question. Id and
// owner are never taken from the request.
type QuestionForm struct {
	Category string               `json:"category" form:"category"`
	Payload  json_util.RawMessage `json:"payload" form:"payload"`
}

// QuestionController handles the owner-scoped question CRUD and the
// per-owner category list.
type QuestionController struct {
	questionService service.QuestionService
	categoryService service.CategoryService
}

// NewQuestionController creates a new QuestionController and sets up its routes.
func NewQuestionController(g *gin.RouterGroup) *QuestionController {
	a := &QuestionController{}
	a.initRouter(g)
	return a
}

func (a *QuestionController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/questions")

	g.GET("/list", a.getQuestions)
	g.GET("/get/:id", a.getQuestion)
	g.GET("/categories", a.getCategories)

	g.POST("/add", a.addQuestion)
	g.POST("/update/:id", a.updateQuestion)
	g.POST("/del/:id", a.delQuestion)
}

// getQuestions lists the logged-in user's questions, optionally filtered
// by the category query parameter.
func (a *QuestionController) getQuestions(c *gin.Context) {
	user := session.GetLoginUser(c)
	questions, err := a.questionService.GetQuestions(user.Username, c.Query("category"))
	if err != nil {
		jsonMsg(c, "obtain questions", err)
		return
	}
	jsonObj(c, questions, nil)
}

// getQuestion retrieves one of the logged-in user's questions by id.
func (a *QuestionController) getQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "get question", err)
		return
	}
	user := session.GetLoginUser(c)
	question, err := a.questionService.GetQuestion(user.Username, id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "question not found")
		return
	} else if err != nil {
		jsonMsg(c, "get question", err)
		return
	}
	jsonObj(c, question, nil)
}

// getCategories lists the user's categories including the reserved
// filter tokens.
func (a *QuestionController) getCategories(c *gin.Context) {
	user := session.GetLoginUser(c)
	categories, err := a.categoryService.CategoriesFor(user.Username)
	if err != nil {
		jsonMsg(c, "obtain categories", err)
		return
	}
	jsonObj(c, categories, nil)
}

// addQuestion creates a question owned by the logged-in user; the store
// mints the id.
func (a *QuestionController) addQuestion(c *gin.Context) {
	var form QuestionForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "add question", err)
		return
	}
	user := session.GetLoginUser(c)
	id, err := a.questionService.AddQuestion(user.Username, form.Category, form.Payload)
	if err != nil {
		jsonMsg(c, "add question", err)
		return
	}
	jsonObj(c, gin.H{"id": id}, nil)
}

// updateQuestion replaces the question matching both id and owner.
func (a *QuestionController) updateQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "update question", err)
		return
	}
	var form QuestionForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "update question", err)
		return
	}
	user := session.GetLoginUser(c)
	err = a.questionService.UpdateQuestion(user.Username, id, form.Category, form.Payload)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "question not found")
		return
	} else if err != nil {
		jsonMsg(c, "update question", err)
		return
	}
	jsonMsg(c, "question updated", nil)
}

// delQuestion removes the question if present; a repeated delete still
// succeeds.
func (a *QuestionController) delQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "delete question", err)
		return
	}
	user := session.GetLoginUser(c)
	if err := a.questionService.DelQuestion(user.Username, id); err != nil {
		jsonMsg(c, "delete question", err)
		return
	}
	jsonMsg(c, "question deleted", nil)
}
