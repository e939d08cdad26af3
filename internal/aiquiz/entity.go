package aiquiz

import (
	"strings"
	"time"

	util "github.com/saulo-duarte/codecourse-api/internal/utils"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyExpert,
}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}

// ParseDifficulty never fails: anything outside the known set becomes medium.
func ParseDifficulty(s string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return DifficultyMedium
	}
	return d
}

// OptionLabels are the only keys a question's options may use.
var OptionLabels = []string{"A", "B", "C", "D"}

type Question struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
}

type PublicQuestion struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

type Session struct {
	ID         string        `json:"id"`
	Topic      string        `json:"topic"`
	Difficulty Difficulty    `json:"difficulty"`
	Questions  []Question    `json:"questions"`
	Status     SessionStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	ExpiresAt  time.Time     `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Complete marks the session graded and keeps it around for at least grace more.
// The deadline is never moved earlier.
func (s *Session) Complete(now time.Time, grace time.Duration) {
	s.Status = SessionCompleted
	if deadline := now.Add(grace); deadline.After(s.ExpiresAt) {
		s.ExpiresAt = deadline
	}
}

// Redacted drops correct answers and explanations.
func (s *Session) Redacted() []PublicQuestion {
	out := make([]PublicQuestion, 0, len(s.Questions))
	for _, q := range s.Questions {
		opts := make(map[string]string, len(q.Options))
		for k, v := range q.Options {
			opts[k] = v
		}
		out = append(out, PublicQuestion{Question: q.Question, Options: opts})
	}
	return out
}

type GenerateQuizRequest struct {
	Topic             string `json:"topic"`
	Difficulty        string `json:"difficulty"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

type GenerateQuizResponse struct {
	QuizID        string           `json:"quizId"`
	Topic         string           `json:"topic"`
	Difficulty    Difficulty       `json:"difficulty"`
	QuestionCount int              `json:"questionCount"`
	Quiz          []PublicQuestion `json:"quiz"`
}

type CheckAnswersRequest struct {
	QuizID          string   `json:"quizId"`
	Answers         []string `json:"answers"`
	QuestionIndices []int    `json:"questionIndices"`
}

type AnswerResult struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question,omitempty"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	CorrectOption string `json:"correctOption,omitempty"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
	Invalid       bool   `json:"invalid,omitempty"`
	Error         string `json:"error,omitempty"`
}

type CheckAnswersResponse struct {
	Score              string         `json:"score"`
	CorrectCount       int            `json:"correctCount"`
	TotalQuestions     int            `json:"totalQuestions"`
	PerformanceMessage string         `json:"performanceMessage"`
	Results            []AnswerResult `json:"results"`
}

type HintRequest struct {
	QuizID        string `json:"quizId"`
	QuestionIndex *int   `json:"questionIndex"`
}

type HintResponse struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	Hint          string `json:"hint"`
}

type DescriptionRequest struct {
	Topic    string `json:"topic"`
	Level    string `json:"level"`
	Duration int    `json:"duration"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
}

type StudyPlanRequest struct {
	CourseID util.FlexibleID `json:"courseId"`
	Weeks    int             `json:"weeks"`
}

type StudyPlanResponse struct {
	StudyPlan string          `json:"studyPlan"`
	CourseID  util.FlexibleID `json:"courseId"`
}

type AnswerQuestionRequest struct {
	Question string          `json:"question"`
	CourseID util.FlexibleID `json:"courseId"`
}

type AnswerQuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
