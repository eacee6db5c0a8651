package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CategoryRepository exposes the read-only categories table.
type CategoryRepository struct {
	db dbtx
}

func NewCategoryRepository(db dbtx) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindAll returns every category ordered by id.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]Category, error) {
	sql, args, err := findAllCategoriesQuery()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError("find categories", err)
	}
	cats, err := pgx.CollectRows(rows, pgx.RowToStructByName[Category])
	if err != nil {
		return nil, translateError("find categories", err)
	}
	return cats, nil
}

// FindByID returns ErrNotFound for unknown ids.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (Category, error) {
	sql, args, err := findCategoryByIDQuery(id)
	if err != nil {
		return Category{}, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return Category{}, translateError("find category", err)
	}
	cat, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Category])
	if err != nil {
		return Category{}, translateError("find category", err)
	}
	return cat, nil
}
