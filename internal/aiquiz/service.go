package aiquiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/metrics"
)

type Service interface {
	GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*GenerateQuizResponse, error)
	CheckAnswers(ctx context.Context, req CheckAnswersRequest) (*CheckAnswersResponse, error)
	GetHint(ctx context.Context, req HintRequest) (*HintResponse, error)
	GenerateDescription(ctx context.Context, req DescriptionRequest) (*DescriptionResponse, error)
	GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) (*StudyPlanResponse, error)
	AnswerQuestion(ctx context.Context, req AnswerQuestionRequest) (*AnswerQuestionResponse, error)
}

type Options struct {
	DefaultQuestions int
	MaxQuestions     int
	SessionTTL       time.Duration
	CompletedGrace   time.Duration

	// HintProvider serves hints; nil falls back to the main provider.
	HintProvider Provider
}

const (
	defaultLevel         = "beginner"
	defaultDurationHours = 30
	defaultPlanWeeks     = 4
)

type service struct {
	provider Provider
	hints    Provider
	store    SessionStore
	opts     Options
	now      func() time.Time
	newID    func() string
}

func NewService(provider Provider, store SessionStore, opts Options) Service {
	return newService(provider, store, opts)
}

func newService(provider Provider, store SessionStore, opts Options) *service {
	if opts.DefaultQuestions <= 0 {
		opts.DefaultQuestions = 5
	}
	if opts.MaxQuestions < opts.DefaultQuestions {
		opts.MaxQuestions = opts.DefaultQuestions
	}
	hints := opts.HintProvider
	if hints == nil {
		hints = provider
	}
	return &service{
		provider: provider,
		hints:    hints,
		store:    store,
		opts:     opts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *service) questionCount(requested int) int {
	switch {
	case requested == 0:
		return s.opts.DefaultQuestions
	case requested < 1:
		return 1
	case requested > s.opts.MaxQuestions:
		return s.opts.MaxQuestions
	}
	return requested
}

func (s *service) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*GenerateQuizResponse, error) {
	log := config.WithContext(ctx)

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, badRequest("Topic is required")
	}
	difficulty := ParseDifficulty(req.Difficulty)
	n := s.questionCount(req.NumberOfQuestions)

	raw, err := s.provider.GenerateText(ctx, quizSystemPrompt, BuildQuizPrompt(topic, difficulty, n))
	if err != nil {
		metrics.QuizGenerations.WithLabelValues("upstream_error").Inc()
		return nil, err
	}

	questions, err := ParseQuestions(raw, n)
	if err != nil {
		metrics.QuizGenerations.WithLabelValues("format_error").Inc()
		log.WithError(err).Errorf("Unusable quiz payload from model:\n%s", raw)
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:         s.newID(),
		Topic:      topic,
		Difficulty: difficulty,
		Questions:  questions,
		Status:     SessionActive,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.opts.SessionTTL),
	}
	if err := s.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store quiz session: %w", err)
	}
	metrics.QuizGenerations.WithLabelValues("success").Inc()

	log.WithField("quiz_id", session.ID).Infof("Generated %s quiz on %q with %d questions", difficulty, topic, n)

	return &GenerateQuizResponse{
		QuizID:        session.ID,
		Topic:         topic,
		Difficulty:    difficulty,
		QuestionCount: len(questions),
		Quiz:          session.Redacted(),
	}, nil
}

func (s *service) CheckAnswers(ctx context.Context, req CheckAnswersRequest) (*CheckAnswersResponse, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(req.QuizID) == "" || len(req.Answers) == 0 {
		return nil, badRequest("Quiz ID and answers are required")
	}
	if req.QuestionIndices != nil && len(req.QuestionIndices) != len(req.Answers) {
		return nil, badRequest("questionIndices must have the same length as answers")
	}

	session, err := s.store.Get(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	results := make([]AnswerResult, 0, len(req.Answers))
	answered := make(map[int]bool, len(session.Questions))
	correct := 0
	for i, answer := range req.Answers {
		idx := i
		if req.QuestionIndices != nil {
			idx = req.QuestionIndices[i]
		}

		// Only the first answer to a question is graded.
		if answered[idx] {
			results = append(results, AnswerResult{
				QuestionIndex: idx,
				UserAnswer:    answer,
				Invalid:       true,
				Error:         "duplicate question index",
			})
			continue
		}

		r := grade(session.Questions, idx, answer)
		if !r.Invalid {
			answered[idx] = true
		}
		if r.IsCorrect {
			correct++
		}
		results = append(results, r)
	}

	score := Score(correct, len(req.Answers))
	metrics.QuizScores.Observe(score.InexactFloat64())

	if len(answered) == len(session.Questions) {
		session.Complete(s.now(), s.opts.CompletedGrace)
		if err := s.store.Put(ctx, session); err != nil {
			log.WithError(err).WithField("quiz_id", session.ID).Warn("Failed to mark quiz session completed")
		}
	}

	return &CheckAnswersResponse{
		Score:              score.StringFixed(1),
		CorrectCount:       correct,
		TotalQuestions:     len(req.Answers),
		PerformanceMessage: PerformanceMessage(score),
		Results:            results,
	}, nil
}

func grade(questions []Question, idx int, answer string) AnswerResult {
	if idx < 0 || idx >= len(questions) {
		return AnswerResult{
			QuestionIndex: idx,
			UserAnswer:    answer,
			Invalid:       true,
			Error:         "invalid question index",
		}
	}

	q := questions[idx]
	r := AnswerResult{
		QuestionIndex: idx,
		Question:      q.Question,
		UserAnswer:    answer,
		CorrectAnswer: q.CorrectAnswer,
		CorrectOption: q.Options[q.CorrectAnswer],
		Explanation:   q.Explanation,
	}

	label := normalizeLabel(answer)
	if _, ok := q.Options[label]; !ok {
		r.Invalid = true
		r.Error = "invalid answer"
		return r
	}
	r.IsCorrect = label == q.CorrectAnswer
	return r
}

func (s *service) GetHint(ctx context.Context, req HintRequest) (*HintResponse, error) {
	if strings.TrimSpace(req.QuizID) == "" || req.QuestionIndex == nil {
		return nil, badRequest("Quiz ID and question index are required")
	}

	session, err := s.store.Get(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	idx := *req.QuestionIndex
	if idx < 0 || idx >= len(session.Questions) {
		return nil, badRequest("Invalid question index")
	}
	q := session.Questions[idx]

	hint, err := s.hints.GenerateText(ctx, hintSystemPrompt, BuildHintPrompt(q))
	if err != nil {
		return nil, err
	}

	return &HintResponse{
		QuestionIndex: idx,
		Question:      q.Question,
		Hint:          strings.TrimSpace(hint),
	}, nil
}

func (s *service) GenerateDescription(ctx context.Context, req DescriptionRequest) (*DescriptionResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, badRequest("Topic is required")
	}
	level := strings.TrimSpace(req.Level)
	if level == "" {
		level = defaultLevel
	}
	duration := req.Duration
	if duration <= 0 {
		duration = defaultDurationHours
	}

	text, err := s.provider.GenerateText(ctx, instructorSystemPrompt, BuildDescriptionPrompt(topic, level, duration))
	if err != nil {
		return nil, err
	}
	return &DescriptionResponse{Description: strings.TrimSpace(text)}, nil
}

func (s *service) GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) (*StudyPlanResponse, error) {
	if req.CourseID.IsEmpty() {
		return nil, badRequest("Course ID is required")
	}
	weeks := req.Weeks
	if weeks <= 0 {
		weeks = defaultPlanWeeks
	}

	text, err := s.provider.GenerateText(ctx, instructorSystemPrompt, BuildStudyPlanPrompt(weeks))
	if err != nil {
		return nil, err
	}
	return &StudyPlanResponse{StudyPlan: strings.TrimSpace(text), CourseID: req.CourseID}, nil
}

func (s *service) AnswerQuestion(ctx context.Context, req AnswerQuestionRequest) (*AnswerQuestionResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, badRequest("Question is required")
	}

	text, err := s.provider.GenerateText(ctx, instructorSystemPrompt, BuildAnswerPrompt(question))
	if err != nil {
		return nil, err
	}
	return &AnswerQuestionResponse{Question: question, Answer: strings.TrimSpace(text)}, nil
}
