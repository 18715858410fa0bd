package service

import (
	"errors"
	"strings"

	"quizbank/database"
	"quizbank/database/model"
	"quizbank/util/json_util"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// Reserved category filter tokens. They are filter keywords, never stored
// category values.
const (
	CategoryAll           = "all"
	CategoryUncategorized = "uncategorized"
)

var ErrReservedCategory = errors.New("category name is reserved")

// QuestionService is the owner-scoped question store. Ids are minted
// store-wide inside the write lock; owner always comes from the caller's
// authenticated identity.
type QuestionService struct{}

func isReservedCategory(category string) bool {
	return category == CategoryAll || category == CategoryUncategorized
}

func validatePayload(payload json_util.RawMessage) error {
	if len(payload) == 0 {
		return errors.New("payload can not be empty")
	}
	var probe any
	return json.Unmarshal(payload, &probe)
}

// GetQuestions lists the owner's questions, optionally filtered by
// category. "all" or empty means no filter, "uncategorized" keeps only
// questions with an empty category, anything else is an exact match.
func (s *QuestionService) GetQuestions(owner string, category string) ([]*model.Question, error) {
	db := database.GetDB().Model(model.Question{}).Where("owner = ?", owner)

	switch category {
	case "", CategoryAll:
	case CategoryUncategorized:
		db = db.Where("category = ?", "")
	default:
		db = db.Where("category = ?", category)
	}

	questions := make([]*model.Question, 0)
	if err := db.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) GetQuestion(owner string, id int) (*model.Question, error) {
	db := database.GetDB()
	question := &model.Question{}
	err := db.Model(model.Question{}).
		Where("id = ? AND owner = ?", id, owner).
		First(question).
		Error
	if err != nil {
		return nil, err
	}
	return question, nil
}

// AddQuestion mints the next id (store-wide max + 1) and inserts the
// question. The mint and the insert run under the store write lock so two
// concurrent creators can never receive the same id.
func (s *QuestionService) AddQuestion(owner string, category string, payload json_util.RawMessage) (int, error) {
	category = strings.TrimSpace(category)
	if isReservedCategory(category) {
		return 0, ErrReservedCategory
	}
	if err := validatePayload(payload); err != nil {
		return 0, err
	}

	var newId int
	err := database.Tx(func(tx *gorm.DB) error {
		var maxId int
		err := tx.Model(model.Question{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxId).
			Error
		if err != nil {
			return err
		}
		newId = maxId + 1
		return tx.Create(&model.Question{
			Id:       newId,
			Owner:    owner,
			Category: category,
			Payload:  payload,
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return newId, nil
}

// UpdateQuestion replaces the question matching both id and owner. There
// is no implicit create: a miss returns gorm.ErrRecordNotFound.
func (s *QuestionService) UpdateQuestion(owner string, id int, category string, payload json_util.RawMessage) error {
	category = strings.TrimSpace(category)
	if isReservedCategory(category) {
		return ErrReservedCategory
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	return database.Tx(func(tx *gorm.DB) error {
		question := &model.Question{}
		err := tx.Model(model.Question{}).
			Where("id = ? AND owner = ?", id, owner).
			First(question).
			Error
		if err != nil {
			return err
		}
		question.Category = category
		question.Payload = payload
		return tx.Save(question).Error
	})
}

// DelQuestion removes the matching (id, owner) question. Deleting a
// question that does not exist is a no-op success.
func (s *QuestionService) DelQuestion(owner string, id int) error {
	return database.Tx(func(tx *gorm.DB) error {
		return tx.Where("id = ? AND owner = ?", id, owner).
			Delete(&model.Question{}).
			Error
	})
}
