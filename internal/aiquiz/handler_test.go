package aiquiz

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doPost(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out map[string]interface{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr, out
}

func TestQuizHandlers(t *testing.T) {
	provider := &fakeProvider{replies: []string{pythonQuiz, "Look at the keyword list."}}
	svc, _, _ := newTestService(provider)
	router := Routes(NewHandler(svc))

	rr, body := doPost(t, router, "/generate-quiz", `{"topic":"Python","difficulty":"hard","numberOfQuestions":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "quiz-1", body["quizId"])
	assert.EqualValues(t, 3, body["questionCount"])
	assert.NotContains(t, rr.Body.String(), "correctAnswer")
	assert.NotContains(t, rr.Body.String(), "explanation")

	rr, body = doPost(t, router, "/get-hint", `{"quizId":"quiz-1","questionIndex":1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Look at the keyword list.", body["hint"])

	rr, body = doPost(t, router, "/check-answers", `{"quizId":"quiz-1","answers":["A","B","C"]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "66.7", body["score"])
	assert.EqualValues(t, 2, body["correctCount"])
	results := body["results"].([]interface{})
	assert.Equal(t, false, results[1].(map[string]interface{})["isCorrect"])
}

func TestQuizHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		path     string
		body     string
		status   int
		message  string
	}{
		{"MalformedBody", &fakeProvider{}, "/generate-quiz", `{"topic":`, http.StatusBadRequest, "Invalid request body"},
		{"MissingTopic", &fakeProvider{}, "/generate-quiz", `{}`, http.StatusBadRequest, "Topic is required"},
		{"BadModelOutput", &fakeProvider{replies: []string{"nope"}}, "/generate-quiz", `{"topic":"Go"}`, http.StatusInternalServerError, "Failed to generate quiz"},
		{"UpstreamDown", &fakeProvider{errs: []error{fmt.Errorf("%w: 503", ErrUpstream)}}, "/generate-quiz", `{"topic":"Go"}`, http.StatusInternalServerError, "Failed to generate quiz"},
		{"UnknownQuiz", &fakeProvider{}, "/check-answers", `{"quizId":"missing","answers":["A"]}`, http.StatusNotFound, "Quiz not found or expired"},
		{"MissingAnswers", &fakeProvider{}, "/check-answers", `{"quizId":"missing"}`, http.StatusBadRequest, "Quiz ID and answers are required"},
		{"HintMissingIndex", &fakeProvider{}, "/get-hint", `{"quizId":"missing"}`, http.StatusBadRequest, "Quiz ID and question index are required"},
		{"HintUnknownQuiz", &fakeProvider{}, "/get-hint", `{"quizId":"missing","questionIndex":0}`, http.StatusNotFound, "Quiz not found or expired"},
		{"StudyPlanNoCourse", &fakeProvider{}, "/generate-study-plan", `{"weeks":3}`, http.StatusBadRequest, "Course ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(tt.provider)
			rr, body := doPost(t, Routes(NewHandler(svc)), tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestInstructorHandlersWrapData(t *testing.T) {
	svc, _, _ := newTestService(&fakeProvider{replies: []string{"Week 1: variables"}})
	rr, body := doPost(t, Routes(NewHandler(svc)), "/generate-study-plan", `{"courseId":12}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Week 1: variables", data["studyPlan"])
	assert.EqualValues(t, 12, data["courseId"])
}
