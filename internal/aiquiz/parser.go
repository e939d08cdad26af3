package aiquiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

type rawQuestion struct {
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
}

// ParseQuestions turns model output into exactly want questions. The payload must be a
// JSON array (optionally fenced in ```json), every record must be well formed, and
// surplus records are dropped.
func ParseQuestions(raw string, want int) ([]Question, error) {
	clean := stripFences(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGenerationFormat)
	}
	if !strings.HasPrefix(clean, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrGenerationFormat)
	}

	var records []rawQuestion
	if err := json.Unmarshal([]byte(clean), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFormat, err)
	}

	questions := make([]Question, 0, len(records))
	for i, r := range records {
		q, err := r.validate()
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrGenerationFormat, i, err)
		}
		questions = append(questions, q)
	}

	if len(questions) < want {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrGenerationFormat, len(questions), want)
	}
	return questions[:want], nil
}

func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```JSON")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func (r rawQuestion) validate() (Question, error) {
	text := strings.TrimSpace(r.Question)
	if text == "" {
		return Question{}, fmt.Errorf("empty question text")
	}

	options, err := parseOptions(r.Options)
	if err != nil {
		return Question{}, err
	}

	answer := normalizeLabel(r.CorrectAnswer)
	if _, ok := options[answer]; !ok {
		return Question{}, fmt.Errorf("correct answer %q is not an option", r.CorrectAnswer)
	}

	return Question{
		Question:      text,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   strings.TrimSpace(r.Explanation),
	}, nil
}

// parseOptions accepts {"A": "...", ...} or ["A) ...", "B) ...", ...].
func parseOptions(raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing options")
	}

	out := make(map[string]string, len(OptionLabels))

	var byLabel map[string]string
	if err := json.Unmarshal(raw, &byLabel); err == nil {
		for k, v := range byLabel {
			out[normalizeLabel(k)] = strings.TrimSpace(v)
		}
	} else {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("options must be an object or a list of strings")
		}
		if len(list) != len(OptionLabels) {
			return nil, fmt.Errorf("expected %d options, got %d", len(OptionLabels), len(list))
		}
		for i, v := range list {
			out[OptionLabels[i]] = trimLabelPrefix(OptionLabels[i], v)
		}
	}

	if len(out) != len(OptionLabels) {
		return nil, fmt.Errorf("expected %d options, got %d", len(OptionLabels), len(out))
	}
	for _, label := range OptionLabels {
		v, ok := out[label]
		if !ok {
			return nil, fmt.Errorf("missing option %s", label)
		}
		if v == "" {
			return nil, fmt.Errorf("option %s is empty", label)
		}
	}
	return out, nil
}

func normalizeLabel(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimRight(s, ").:")
	return strings.TrimSpace(s)
}

func trimLabelPrefix(label, v string) string {
	v = strings.TrimSpace(v)
	for _, sep := range []string{")", ".", ":"} {
		if p := label + sep; strings.HasPrefix(strings.ToUpper(v), p) {
			return strings.TrimSpace(v[len(p):])
		}
	}
	return v
}
