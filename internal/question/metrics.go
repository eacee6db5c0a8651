package question

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeServed    = "served"
	outcomeExhausted = "exhausted"
)

// Metrics counts question and quiz activity.
type Metrics struct {
	QuizSelections   *prometheus.CounterVec
	QuestionsCreated prometheus.Counter
	QuestionsDeleted prometheus.Counter
	Searches         prometheus.Counter
}

// NewMetrics creates the collectors and registers them when reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QuizSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "quiz_selections_total",
			Help:      "Quiz question selections by outcome (served, exhausted).",
		}, []string{"outcome"}),
		QuestionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_created_total",
			Help:      "Questions inserted through the API.",
		}),
		QuestionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_deleted_total",
			Help:      "Questions deleted through the API.",
		}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "searches_total",
			Help:      "Question text searches executed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.QuizSelections, m.QuestionsCreated, m.QuestionsDeleted, m.Searches)
	}
	return m
}
