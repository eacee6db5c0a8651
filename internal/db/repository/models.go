package repository

import "errors"

var (
	// ErrNotFound signals that no row matched the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint signals that the store rejected a write (foreign key, check, etc.).
	ErrConstraint = errors.New("constraint violation")
	// ErrUnknownField is returned for filters on columns the repository does not expose.
	ErrUnknownField = errors.New("unknown field")
)

// Field names a filterable question column.
type Field string

const (
	FieldCategory   Field = "category"
	FieldDifficulty Field = "difficulty"
	FieldQuestion   Field = "question"
	FieldAnswer     Field = "answer"
)

func (f Field) integer() bool {
	return f == FieldCategory || f == FieldDifficulty
}

func (f Field) text() bool {
	return f == FieldQuestion || f == FieldAnswer
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Category   int64  `db:"category"`
	Difficulty int32  `db:"difficulty"`
}

// Category mirrors a row of the categories table.
type Category struct {
	ID   int64  `db:"id"`
	Type string `db:"type"`
}

// InsertQuestionParams carries the columns supplied on creation; the id is assigned by the store.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}

// DefaultCategories is the seed set shipped with the schema migrations.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}
