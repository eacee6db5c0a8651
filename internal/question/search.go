package question

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

type patternFinder interface {
	FindByPattern(ctx context.Context, field repository.Field, term string) ([]repository.Question, error)
}

// Search returns every question whose text contains term, ignoring case, in
// store order. Callers skip the search entirely for an empty term.
func Search(ctx context.Context, term string, store patternFinder) ([]Question, error) {
	rows, err := store.FindByPattern(ctx, repository.FieldQuestion, term)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}
