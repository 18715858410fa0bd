package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesFor(t *testing.T) {
	setup(t)

	questions := QuestionService{}
	service := CategoryService{}

	// No questions: only the "all" token.
	categories, err := service.CategoriesFor("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{CategoryAll}, categories)

	_, err = questions.AddQuestion("alice", "math", payload("q1"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("alice", "art", payload("q2"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "science", payload("q3"))
	assert.NoError(t, err)

	// Sorted, owner-scoped, no "uncategorized" without an empty category.
	categories, err = service.CategoriesFor("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{CategoryAll, "art", "math"}, categories)

	// One uncategorized question brings the token in.
	id, err := questions.AddQuestion("alice", "", payload("q4"))
	assert.NoError(t, err)
	categories, err = service.CategoriesFor("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{CategoryAll, "art", "math", CategoryUncategorized}, categories)

	// And leaves again with the last empty-category question.
	assert.NoError(t, questions.DelQuestion("alice", id))
	categories, err = service.CategoriesFor("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{CategoryAll, "art", "math"}, categories)
}

func TestCategoriesGlobal(t *testing.T) {
	setup(t)

	questions := QuestionService{}
	service := CategoryService{}

	_, err := questions.AddQuestion("alice", "math", payload("q1"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "science", payload("q2"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "", payload("q3"))
	assert.NoError(t, err)

	// Only real stored categories, across all owners.
	categories, err := service.CategoriesGlobal()
	assert.NoError(t, err)
	assert.Equal(t, []string{"math", "science"}, categories)
}

func TestRenameCategory(t *testing.T) {
	setup(t)

	questions := QuestionService{}
	service := CategoryService{}

	_, err := questions.AddQuestion("alice", "math", payload("q1"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "math", payload("q2"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "math", payload("q3"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "science", payload("q4"))
	assert.NoError(t, err)

	assert.NoError(t, service.RenameCategory("math", "mathematics"))

	old, err := questions.GetQuestions("alice", "math")
	assert.NoError(t, err)
	assert.Empty(t, old)

	renamedAlice, err := questions.GetQuestions("alice", "mathematics")
	assert.NoError(t, err)
	renamedBob, err := questions.GetQuestions("bob", "mathematics")
	assert.NoError(t, err)
	assert.Len(t, renamedAlice, 1)
	assert.Len(t, renamedBob, 2)

	science, err := questions.GetQuestions("bob", "science")
	assert.NoError(t, err)
	assert.Len(t, science, 1)

	// Unmatched old name is a harmless no-op.
	assert.NoError(t, service.RenameCategory("history", "geography"))

	// Reserved tokens can never become stored categories.
	assert.ErrorIs(t, service.RenameCategory("science", CategoryAll), ErrReservedCategory)
	assert.ErrorIs(t, service.RenameCategory("science", CategoryUncategorized), ErrReservedCategory)
	assert.ErrorIs(t, service.RenameCategory("science", ""), ErrMissingField)
}

func TestDeleteCategory(t *testing.T) {
	setup(t)

	questions := QuestionService{}
	service := CategoryService{}

	id1, err := questions.AddQuestion("alice", "math", payload("q1"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "math", payload("q2"))
	assert.NoError(t, err)
	_, err = questions.AddQuestion("bob", "science", payload("q3"))
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteCategory("math"))

	// The questions survive, reassigned to uncategorized.
	q, err := questions.GetQuestion("alice", id1)
	assert.NoError(t, err)
	assert.Equal(t, "", q.Category)

	categories, err := service.CategoriesFor("alice")
	assert.NoError(t, err)
	assert.NotContains(t, categories, "math")
	assert.Contains(t, categories, CategoryUncategorized)

	global, err := service.CategoriesGlobal()
	assert.NoError(t, err)
	assert.Equal(t, []string{"science"}, global)
}
