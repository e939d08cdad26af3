package aiquiz

import (
	"fmt"
	"sort"
	"strings"
)

const quizSystemPrompt = `
You generate multiple-choice quizzes for an online programming course platform.

General rules:
1. Only generate questions about programming, software engineering and computer science.
2. Every question has exactly one correct answer.
3. Every question has exactly four options labelled "A", "B", "C" and "D".
4. Every question has:
   - "question": the prompt, never revealing the answer
   - "options": an object mapping "A".."D" to the option text
   - "correctAnswer": the label of the correct option
   - "explanation": a short, objective explanation of why the answer is correct

Expected JSON format:

[
  {
    "question": "<question text>",
    "options": {
      "A": "...",
      "B": "...",
      "C": "...",
      "D": "..."
    },
    "correctAnswer": "C",
    "explanation": "<brief explanation>"
  }
]

Quality guidelines:
- Do not make the correct answer obvious: options must have similar length and structure.
- Use plausible distractors.
- Difficulty:
  - easy: basic concepts or direct definitions.
  - medium: applying or interpreting concepts.
  - hard: analysis, reading code, comparing approaches.
  - expert: edge cases, internals, performance and correctness trade-offs.
- Always answer with pure, valid JSON and nothing outside the JSON array.
`

const hintSystemPrompt = `
You are a patient programming instructor giving hints for quiz questions.
Never state or paraphrase the correct option, never mention its label, and never rule out
options one by one. Answer with one or two sentences of plain text.
`

const instructorSystemPrompt = `
You are a helpful coding instructor for an online course platform.
Answer clearly and professionally.
`

func BuildQuizPrompt(topic string, difficulty Difficulty, n int) string {
	return fmt.Sprintf(
		"Create a %s difficulty quiz with %d multiple-choice questions about %q. "+
			"Follow the JSON format from the system prompt exactly and return %d items.",
		difficulty, n, topic, n,
	)
}

func BuildHintPrompt(q Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Question)
	for _, label := range sortedLabels(q.Options) {
		fmt.Fprintf(&b, "%s) %s\n", label, q.Options[label])
	}
	fmt.Fprintf(&b, "The correct answer is %s) %s.\n", q.CorrectAnswer, q.Options[q.CorrectAnswer])
	b.WriteString("Write a hint that guides the student towards the correct answer without revealing it.")
	return b.String()
}

func BuildDescriptionPrompt(topic, level string, duration int) string {
	return fmt.Sprintf(
		"Create an engaging course description for a %s level course about %s. "+
			"The course will be %d hours long. "+
			"Include what participants will learn and why this course is valuable. "+
			"Format the response to be professional and compelling for a course catalog.",
		level, topic, duration,
	)
}

func BuildStudyPlanPrompt(weeks int) string {
	return fmt.Sprintf(
		"Create a detailed %d-week study plan for a coding course. "+
			"Break it down by week, with specific topics to cover each day. "+
			"Include recommended practice exercises and projects. "+
			"Format the response in a clear, structured way that's easy to follow.",
		weeks,
	)
}

func BuildAnswerPrompt(question string) string {
	return "Answer the following programming or course-related question as a helpful coding instructor:\n\n" +
		question +
		"\n\nProvide a clear, concise, and accurate response with code examples if appropriate."
}

func sortedLabels(options map[string]string) []string {
	labels := make([]string, 0, len(options))
	for k := range options {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}
