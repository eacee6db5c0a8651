package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// QuestionRepository reads and writes the questions table through pgx.
type QuestionRepository struct {
	db dbtx
}

// NewQuestionRepository wraps a pgx pool (or transaction).
func NewQuestionRepository(db dbtx) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// FindAll returns every question ordered by id (insertion order).
func (r *QuestionRepository) FindAll(ctx context.Context) ([]Question, error) {
	sql, args, err := findAllQuestionsQuery()
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, "find questions", sql, args)
}

// FindByID returns ErrNotFound when no question carries the id.
func (r *QuestionRepository) FindByID(ctx context.Context, id int64) (Question, error) {
	sql, args, err := findQuestionByIDQuery(id)
	if err != nil {
		return Question{}, err
	}
	return r.collectOne(ctx, "find question", sql, args)
}

// FindByField filters on an integer column (category, difficulty).
func (r *QuestionRepository) FindByField(ctx context.Context, field Field, value int64) ([]Question, error) {
	sql, args, err := findQuestionsByFieldQuery(field, value)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, "find questions by "+string(field), sql, args)
}

// FindByPattern returns questions whose text column contains term, ignoring case.
func (r *QuestionRepository) FindByPattern(ctx context.Context, field Field, term string) ([]Question, error) {
	sql, args, err := findQuestionsByPatternQuery(field, term)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, "search questions", sql, args)
}

// Count returns the number of stored questions.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := countQuestionsQuery()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, translateError("count questions", err)
	}
	return n, nil
}

// Insert stores a question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params InsertQuestionParams) (Question, error) {
	sql, args, err := insertQuestionQuery(params)
	if err != nil {
		return Question{}, err
	}
	return r.collectOne(ctx, "insert question", sql, args)
}

// Delete removes a question; ErrNotFound if nothing was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := deleteQuestionQuery(id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateError("delete question", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) collect(ctx context.Context, op, sql string, args []interface{}) ([]Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	qs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Question])
	if err != nil {
		return nil, translateError(op, err)
	}
	return qs, nil
}

func (r *QuestionRepository) collectOne(ctx context.Context, op, sql string, args []interface{}) (Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return Question{}, translateError(op, err)
	}
	q, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Question])
	if err != nil {
		return Question{}, translateError(op, err)
	}
	return q, nil
}
