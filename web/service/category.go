package service

import (
	"sort"
	"strings"

	"quizbank/database"
	"quizbank/database/model"

	"gorm.io/gorm"
)

// CategoryService derives category sets from the question store and
// performs the cross-owner admin rewrites.
type CategoryService struct{}

// CategoriesFor returns the owner's distinct categories, lexicographically
// sorted. "all" is always present; "uncategorized" only if at least one
// owned question has an empty category.
func (s *CategoryService) CategoriesFor(owner string) ([]string, error) {
	db := database.GetDB()

	var stored []string
	err := db.Model(model.Question{}).
		Where("owner = ? AND category != ?", owner, "").
		Distinct("category").
		Pluck("category", &stored).
		Error
	if err != nil {
		return nil, err
	}

	var uncategorized int64
	err = db.Model(model.Question{}).
		Where("owner = ? AND category = ?", owner, "").
		Count(&uncategorized).
		Error
	if err != nil {
		return nil, err
	}

	categories := append(stored, CategoryAll)
	if uncategorized > 0 {
		categories = append(categories, CategoryUncategorized)
	}
	sort.Strings(categories)
	return categories, nil
}

// CategoriesGlobal returns every distinct stored category across all
// owners, sorted. The reserved tokens are not added here: the global view
// reports only categories that actually exist.
func (s *CategoryService) CategoriesGlobal() ([]string, error) {
	db := database.GetDB()

	var stored []string
	err := db.Model(model.Question{}).
		Where("category != ?", "").
		Distinct("category").
		Pluck("category", &stored).
		Error
	if err != nil {
		return nil, err
	}
	sort.Strings(stored)
	return stored, nil
}

// RenameCategory rewrites every question of any owner from the old
// category to the new one. An unmatched old name is a harmless no-op.
func (s *CategoryService) RenameCategory(oldName string, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrMissingField
	}
	if isReservedCategory(newName) || isReservedCategory(oldName) {
		return ErrReservedCategory
	}

	return database.Tx(func(tx *gorm.DB) error {
		return tx.Model(model.Question{}).
			Where("category = ?", oldName).
			Update("category", newName).
			Error
	})
}

// DeleteCategory clears the category on every matching question,
// reassigning them to uncategorized. The questions themselves survive.
func (s *CategoryService) DeleteCategory(name string) error {
	if isReservedCategory(name) {
		return ErrReservedCategory
	}

	return database.Tx(func(tx *gorm.DB) error {
		return tx.Model(model.Question{}).
			Where("category = ?", name).
			Update("category", "").
			Error
	})
}
