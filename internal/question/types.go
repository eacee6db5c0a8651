package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// PageSize is the fixed number of questions per page across the API.
const PageSize = 10

// AnyCategory is the quiz category id meaning "draw from every category".
const AnyCategory int64 = 0

// Question is the formatted representation delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionPage is one page of questions plus the listing metadata.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      map[int64]string
	CurrentCategory string
}

// SubmitResult is the outcome of the create-or-search endpoint. Searched selects
// whether Page holds search matches or Created holds the new question (with Page
// holding the refreshed listing).
type SubmitResult struct {
	Searched bool
	Page     QuestionPage
	Created  Question
}

// QuestionPayload is the POST /questions body. A non-empty Word selects search.
type QuestionPayload struct {
	Word       string   `json:"word"`
	Question   *string  `json:"question" validate:"required,notblank"`
	Answer     *string  `json:"answer" validate:"required,notblank"`
	Difficulty *FlexInt `json:"difficulty" validate:"required,min=1,max=5"`
	Category   *FlexInt `json:"category" validate:"required,min=1"`
}

// QuizCategory identifies the category a quiz round draws from.
type QuizCategory struct {
	ID   *FlexInt `json:"id"`
	Type string   `json:"type,omitempty"`
}

// QuizPayload is the POST /quizzes body. The snake_case keys are accepted for
// older clients.
type QuizPayload struct {
	PreviousQuestions []int64       `json:"previousQuestions"`
	QuizCategory      *QuizCategory `json:"quizCategory"`

	LegacyPreviousQuestions []int64       `json:"previous_questions"`
	LegacyQuizCategory      *QuizCategory `json:"quiz_category"`
}

// normalize resolves the camelCase/snake_case aliases and checks presence.
func (p QuizPayload) normalize() (served []int64, categoryID int64, err error) {
	served = p.PreviousQuestions
	if served == nil {
		served = p.LegacyPreviousQuestions
	}
	category := p.QuizCategory
	if category == nil {
		category = p.LegacyQuizCategory
	}
	switch {
	case served == nil:
		return nil, 0, fmt.Errorf("%w: previousQuestions is required", ErrBadRequest)
	case category == nil || category.ID == nil:
		return nil, 0, fmt.Errorf("%w: quizCategory.id is required", ErrBadRequest)
	}
	return served, int64(*category.ID), nil
}

// FlexInt decodes a JSON number or a numeric string ("3") into an integer.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt(n)
	return nil
}

func toDomain(row repository.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: int(row.Difficulty),
	}
}

func toDomainList(rows []repository.Question) []Question {
	out := make([]Question, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out
}

func categoryMap(rows []repository.Category) map[int64]string {
	m := make(map[int64]string, len(rows))
	for _, c := range rows {
		m[c.ID] = c.Type
	}
	return m
}
