package repository

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var questionColumns = []string{"id", "question", "answer", "category", "difficulty"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func selectQuestions() sq.SelectBuilder {
	return psql.Select(questionColumns...).From("questions").OrderBy("id")
}

func findAllQuestionsQuery() (string, []interface{}, error) {
	return selectQuestions().ToSql()
}

func findQuestionByIDQuery(id int64) (string, []interface{}, error) {
	return selectQuestions().Where(sq.Eq{"id": id}).ToSql()
}

func findQuestionsByFieldQuery(field Field, value int64) (string, []interface{}, error) {
	if !field.integer() {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return selectQuestions().Where(sq.Eq{string(field): value}).ToSql()
}

// findQuestionsByPatternQuery matches term as a literal, case-insensitive substring.
func findQuestionsByPatternQuery(field Field, term string) (string, []interface{}, error) {
	if !field.text() {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return selectQuestions().
		Where(sq.ILike{string(field): "%" + likeEscaper.Replace(term) + "%"}).
		ToSql()
}

func countQuestionsQuery() (string, []interface{}, error) {
	return psql.Select("COUNT(*)").From("questions").ToSql()
}

func insertQuestionQuery(p InsertQuestionParams) (string, []interface{}, error) {
	return psql.Insert("questions").
		Columns("question", "answer", "category", "difficulty").
		Values(p.Question, p.Answer, p.Category, p.Difficulty).
		Suffix("RETURNING " + strings.Join(questionColumns, ", ")).
		ToSql()
}

func deleteQuestionQuery(id int64) (string, []interface{}, error) {
	return psql.Delete("questions").Where(sq.Eq{"id": id}).ToSql()
}

func selectCategories() sq.SelectBuilder {
	return psql.Select("id", "type").From("categories").OrderBy("id")
}

func findAllCategoriesQuery() (string, []interface{}, error) {
	return selectCategories().ToSql()
}

func findCategoryByIDQuery(id int64) (string, []interface{}, error) {
	return selectCategories().Where(sq.Eq{"id": id}).ToSql()
}
