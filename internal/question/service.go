package question

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// QuestionStore is the record store surface for questions.
type QuestionStore interface {
	FindAll(ctx context.Context) ([]repository.Question, error)
	FindByID(ctx context.Context, id int64) (repository.Question, error)
	FindByField(ctx context.Context, field repository.Field, value int64) ([]repository.Question, error)
	FindByPattern(ctx context.Context, field repository.Field, term string) ([]repository.Question, error)
	Insert(ctx context.Context, params repository.InsertQuestionParams) (repository.Question, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// CategoryStore is the read-only record store surface for categories.
type CategoryStore interface {
	FindAll(ctx context.Context) ([]repository.Category, error)
	FindByID(ctx context.Context, id int64) (repository.Category, error)
}

// Service answers the trivia operations on top of the record store.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	selector   *Selector
	metrics    *Metrics
	validate   *validator.Validate
	logger     zerolog.Logger
}

type ServiceOptions struct {
	Selector *Selector
	Metrics  *Metrics
}

func NewService(questions QuestionStore, categories CategoryStore, logger zerolog.Logger, opts ServiceOptions) *Service {
	if opts.Selector == nil {
		opts.Selector = NewSelector(nil)
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	return &Service{
		questions:  questions,
		categories: categories,
		selector:   opts.Selector,
		metrics:    opts.Metrics,
		validate:   newValidator(),
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// ListCategories returns the id -> type mapping; NotFound when none are seeded.
func (s *Service) ListCategories(ctx context.Context) (map[int64]string, error) {
	cats, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, s.internal("list categories", err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrNotFound)
	}
	return categoryMap(cats), nil
}

// ListQuestions pages through every question in insertion order.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	questions, err := s.listing(ctx, page)
	if err != nil {
		return QuestionPage{}, err
	}
	if len(questions.Questions) == 0 {
		return QuestionPage{}, fmt.Errorf("%w: page %d is empty", ErrNotFound, page)
	}
	return questions, nil
}

// DeleteQuestion removes a question and returns its id.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	if _, err := s.questions.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%w: question %d", ErrNotFound, id)
		}
		return 0, s.unprocessable("lookup question", err)
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return 0, s.unprocessable("delete question", err)
	}
	s.metrics.QuestionsDeleted.Inc()
	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return id, nil
}

// CreateOrSearch runs a search when the payload carries a word, otherwise it
// creates a question from the payload fields.
func (s *Service) CreateOrSearch(ctx context.Context, payload QuestionPayload, page int) (SubmitResult, error) {
	if payload.Word != "" {
		result, err := s.SearchQuestions(ctx, payload.Word, page)
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Searched: true, Page: result}, nil
	}
	created, listing, err := s.CreateQuestion(ctx, payload, page)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Page: listing, Created: created}, nil
}

// SearchQuestions pages the case-insensitive matches for term. The total is the
// global question count, not the match count.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	s.metrics.Searches.Inc()
	matches, err := Search(ctx, term, s.questions)
	if err != nil {
		return QuestionPage{}, s.internal("search questions", err)
	}
	if len(matches) == 0 {
		return QuestionPage{}, fmt.Errorf("%w: no questions match %q", ErrNotFound, term)
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionPage{}, s.internal("count questions", err)
	}
	return QuestionPage{
		Questions:      Paginate(page, PageSize, matches),
		TotalQuestions: total,
	}, nil
}

// CreateQuestion validates and inserts a question, then returns it alongside a
// fresh page of the full listing.
func (s *Service) CreateQuestion(ctx context.Context, payload QuestionPayload, page int) (Question, QuestionPage, error) {
	if err := s.validate.Struct(payload); err != nil {
		return Question{}, QuestionPage{}, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	params := repository.InsertQuestionParams{
		Question:   *payload.Question,
		Answer:     *payload.Answer,
		Category:   int64(*payload.Category),
		Difficulty: int32(*payload.Difficulty),
	}
	if _, err := s.categories.FindByID(ctx, params.Category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, QuestionPage{}, fmt.Errorf("%w: category %d does not exist", ErrUnprocessable, params.Category)
		}
		return Question{}, QuestionPage{}, s.unprocessable("lookup category", err)
	}

	row, err := s.questions.Insert(ctx, params)
	if err != nil {
		return Question{}, QuestionPage{}, s.unprocessable("insert question", err)
	}
	s.metrics.QuestionsCreated.Inc()
	s.logger.Info().Int64("question_id", row.ID).Int64("category", row.Category).Msg("question created")

	all, err := s.questions.FindAll(ctx)
	if err != nil {
		return Question{}, QuestionPage{}, s.unprocessable("list questions", err)
	}
	return toDomain(row), QuestionPage{
		Questions:      Paginate(page, PageSize, toDomainList(all)),
		TotalQuestions: len(all),
	}, nil
}

// ListByCategory pages the questions of one category. TotalQuestions counts
// every question in the store, not only the category's.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64, page int) (QuestionPage, error) {
	cat, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return QuestionPage{}, fmt.Errorf("%w: category %d does not exist", ErrBadRequest, categoryID)
		}
		return QuestionPage{}, s.internal("lookup category", err)
	}
	rows, err := s.questions.FindByField(ctx, repository.FieldCategory, cat.ID)
	if err != nil {
		return QuestionPage{}, s.internal("list category questions", err)
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionPage{}, s.internal("count questions", err)
	}
	return QuestionPage{
		Questions:       Paginate(page, PageSize, toDomainList(rows)),
		TotalQuestions:  total,
		CurrentCategory: cat.Type,
	}, nil
}

// NextQuizQuestion returns a random question not yet served in this round, or
// ok=false once the category is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, payload QuizPayload) (q Question, ok bool, err error) {
	served, categoryID, err := payload.normalize()
	if err != nil {
		return Question{}, false, err
	}

	var rows []repository.Question
	if categoryID == AnyCategory {
		rows, err = s.questions.FindAll(ctx)
	} else {
		rows, err = s.questions.FindByField(ctx, repository.FieldCategory, categoryID)
	}
	if err != nil {
		return Question{}, false, s.internal("load quiz candidates", err)
	}

	q, ok = s.selector.Next(toDomainList(rows), served)
	if !ok {
		s.metrics.QuizSelections.WithLabelValues(outcomeExhausted).Inc()
		s.logger.Debug().Int64("category", categoryID).Int("served", len(served)).Msg("quiz exhausted")
		return Question{}, false, nil
	}
	s.metrics.QuizSelections.WithLabelValues(outcomeServed).Inc()
	return q, true, nil
}

// newValidator returns the payload validator with the notblank tag registered.
// Registration only fails on a programming error, so it panics.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return validate
}

func (s *Service) listing(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.FindAll(ctx)
	if err != nil {
		return QuestionPage{}, s.internal("list questions", err)
	}
	cats, err := s.categories.FindAll(ctx)
	if err != nil {
		return QuestionPage{}, s.internal("list categories", err)
	}
	return QuestionPage{
		Questions:      Paginate(page, PageSize, toDomainList(rows)),
		TotalQuestions: len(rows),
		Categories:     categoryMap(cats),
	}, nil
}

func (s *Service) internal(op string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Msg("store failure")
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (s *Service) unprocessable(op string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Msg("store failure")
	return fmt.Errorf("%w: %s: %v", ErrUnprocessable, op, err)
}
