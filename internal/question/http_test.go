package question

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

type apiResponse struct {
	Success         bool              `json:"success"`
	Error           int               `json:"error"`
	Message         string            `json:"message"`
	Questions       []Question        `json:"questions"`
	Question        *Question         `json:"question"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories"`
	CurrentCategory string            `json:"current_category"`
	Created         int64             `json:"created"`
	QuestionCreated string            `json:"question_created"`
	Deleted         int64             `json:"deleted"`
}

func newTestMux(t *testing.T) (*http.ServeMux, *repository.Memory) {
	t.Helper()
	svc, mem, _ := newTestService(t)
	mux := http.NewServeMux()
	NewHTTPHandlers(svc, zerolog.Nop()).Register(mux)
	return mux, mem
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, apiResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func TestHTTPListCategories(t *testing.T) {
	mux, _ := newTestMux(t)

	code, resp := do(t, mux, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Art", resp.Categories["2"])
}

func TestHTTPListQuestions(t *testing.T) {
	mux, mem := newTestMux(t)
	seedQuestions(t, mem, 12, 1)

	code, resp := do(t, mux, http.MethodGet, "/questions?page=2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Questions, 2)
	assert.Equal(t, 12, resp.TotalQuestions)
	assert.Len(t, resp.Categories, 6)

	code, resp = do(t, mux, http.MethodGet, "/questions?page=nonsense", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Questions, 10)

	code, resp = do(t, mux, http.MethodGet, "/questions?page=1000", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
	assert.Equal(t, 404, resp.Error)
	assert.Equal(t, "resource not found", resp.Message)
}

func TestHTTPCreateSearchDelete(t *testing.T) {
	mux, _ := newTestMux(t)

	code, created := do(t, mux, http.MethodPost, "/questions",
		`{"question":"What is the title of the first Harry Potter book?","answer":"Philosopher's Stone","difficulty":2,"category":"5"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, created.Success)
	assert.NotZero(t, created.Created)
	assert.Equal(t, "What is the title of the first Harry Potter book?", created.QuestionCreated)
	assert.Equal(t, 1, created.TotalQuestions)
	require.Len(t, created.Questions, 1)
	assert.Equal(t, int64(5), created.Questions[0].Category)

	code, found := do(t, mux, http.MethodPost, "/questions", `{"word":"TITLE"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, found.Questions, 1)
	assert.Equal(t, 1, found.TotalQuestions)

	code, missing := do(t, mux, http.MethodPost, "/questions", `{"word":"platypus"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, missing.Success)

	code, deleted := do(t, mux, http.MethodDelete, fmt.Sprintf("/questions/%d", created.Created), "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, created.Created, deleted.Deleted)

	code, again := do(t, mux, http.MethodDelete, fmt.Sprintf("/questions/%d", created.Created), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, 404, again.Error)
}

func TestHTTPCreateUnprocessable(t *testing.T) {
	mux, _ := newTestMux(t)

	for _, body := range []string{
		`{"question":"q","answer":"a","difficulty":1}`,
		`{"question":"q","answer":"a","difficulty":"hard","category":1}`,
		`{"question":"q","answer":"a","difficulty":2.0,"category":1}`,
		`{"question":"q","answer":"a","difficulty":1,"category":77}`,
		`not json`,
	} {
		code, resp := do(t, mux, http.MethodPost, "/questions", body)
		assert.Equal(t, http.StatusUnprocessableEntity, code, body)
		assert.Equal(t, "unprocessable", resp.Message)
		assert.Equal(t, 422, resp.Error)
	}
}

func TestHTTPDeleteNonNumericID(t *testing.T) {
	mux, _ := newTestMux(t)
	code, resp := do(t, mux, http.MethodDelete, "/questions/abc", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestHTTPListByCategory(t *testing.T) {
	mux, mem := newTestMux(t)
	seedQuestions(t, mem, 3, 4)
	seedQuestions(t, mem, 17, 1)

	code, resp := do(t, mux, http.MethodGet, "/categories/4/questions", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Questions, 3)
	assert.Equal(t, 20, resp.TotalQuestions)
	assert.Equal(t, "History", resp.CurrentCategory)

	code, resp = do(t, mux, http.MethodGet, "/categories/100/questions", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad request", resp.Message)
}

func TestHTTPQuizzes(t *testing.T) {
	mux, mem := newTestMux(t)
	rows := seedQuestions(t, mem, 2, 6)

	code, resp := do(t, mux, http.MethodPost, "/quizzes",
		fmt.Sprintf(`{"previousQuestions":[%d],"quizCategory":{"id":6,"type":"Sports"}}`, rows[0].ID))
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Question)
	assert.Equal(t, rows[1].ID, resp.Question.ID)

	code, resp = do(t, mux, http.MethodPost, "/quizzes",
		fmt.Sprintf(`{"previous_questions":[%d,%d],"quiz_category":{"id":"6"}}`, rows[0].ID, rows[1].ID))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Question, "exhausted rounds carry no question")

	for _, body := range []string{
		`{"quizCategory":{"id":6}}`,
		`{"previousQuestions":[]}`,
		`{"previousQuestions":null,"quizCategory":{"id":6}}`,
		`[]`,
	} {
		code, resp := do(t, mux, http.MethodPost, "/quizzes", body)
		assert.Equal(t, http.StatusBadRequest, code, body)
		assert.Equal(t, 400, resp.Error)
	}
}
