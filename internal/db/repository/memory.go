package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Memory is a process-local record store with the same surface as the Postgres
// repositories. Used by tests and STORE_DRIVER=memory.
type Memory struct {
	mu         sync.RWMutex
	questions  []Question
	categories []Category
	nextID     int64
}

// NewMemory builds an empty question store over the given categories.
func NewMemory(categories ...Category) *Memory {
	return &Memory{
		categories: append([]Category(nil), categories...),
		nextID:     1,
	}
}

// Questions returns the question view of the store.
func (m *Memory) Questions() *MemoryQuestions { return &MemoryQuestions{m: m} }

// Categories returns the category view of the store.
func (m *Memory) Categories() *MemoryCategories { return &MemoryCategories{m: m} }

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// MemoryQuestions implements the question repository contract in memory.
type MemoryQuestions struct {
	m *Memory
}

func (q *MemoryQuestions) FindAll(_ context.Context) ([]Question, error) {
	return q.filter(func(Question) bool { return true }), nil
}

func (q *MemoryQuestions) FindByID(_ context.Context, id int64) (Question, error) {
	q.m.mu.RLock()
	defer q.m.mu.RUnlock()
	for _, row := range q.m.questions {
		if row.ID == id {
			return row, nil
		}
	}
	return Question{}, ErrNotFound
}

func (q *MemoryQuestions) FindByField(_ context.Context, field Field, value int64) ([]Question, error) {
	switch field {
	case FieldCategory:
		return q.filter(func(row Question) bool { return row.Category == value }), nil
	case FieldDifficulty:
		return q.filter(func(row Question) bool { return int64(row.Difficulty) == value }), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (q *MemoryQuestions) FindByPattern(_ context.Context, field Field, term string) ([]Question, error) {
	needle := strings.ToLower(term)
	switch field {
	case FieldQuestion:
		return q.filter(func(row Question) bool { return strings.Contains(strings.ToLower(row.Question), needle) }), nil
	case FieldAnswer:
		return q.filter(func(row Question) bool { return strings.Contains(strings.ToLower(row.Answer), needle) }), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (q *MemoryQuestions) Count(_ context.Context) (int, error) {
	q.m.mu.RLock()
	defer q.m.mu.RUnlock()
	return len(q.m.questions), nil
}

// Insert enforces the category foreign key the way the SQL schema does.
func (q *MemoryQuestions) Insert(_ context.Context, params InsertQuestionParams) (Question, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	if !q.m.hasCategory(params.Category) {
		return Question{}, fmt.Errorf("insert question: %w: questions_category_fkey", ErrConstraint)
	}
	row := Question{
		ID:         q.m.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	}
	q.m.nextID++
	q.m.questions = append(q.m.questions, row)
	return row, nil
}

func (q *MemoryQuestions) Delete(_ context.Context, id int64) error {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	for i, row := range q.m.questions {
		if row.ID == id {
			q.m.questions = append(q.m.questions[:i], q.m.questions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (q *MemoryQuestions) filter(keep func(Question) bool) []Question {
	q.m.mu.RLock()
	defer q.m.mu.RUnlock()
	out := make([]Question, 0, len(q.m.questions))
	for _, row := range q.m.questions {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// MemoryCategories implements the category repository contract in memory.
type MemoryCategories struct {
	m *Memory
}

func (c *MemoryCategories) FindAll(_ context.Context) ([]Category, error) {
	c.m.mu.RLock()
	defer c.m.mu.RUnlock()
	return append([]Category(nil), c.m.categories...), nil
}

func (c *MemoryCategories) FindByID(_ context.Context, id int64) (Category, error) {
	c.m.mu.RLock()
	defer c.m.mu.RUnlock()
	for _, cat := range c.m.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}

func (m *Memory) hasCategory(id int64) bool {
	for _, cat := range m.categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}
