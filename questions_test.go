package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadQuestions_DefaultQuiz(t *testing.T) {
	questions, err := loadQuestions("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 built-in questions, got %d", len(questions))
	}
	if err := validateQuestions(questions); err != nil {
		t.Fatalf("built-in quiz is invalid: %v", err)
	}
}

func TestLoadQuestions_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	data := `[
		{"question": "Largest ocean?", "options": ["Atlantic", "Pacific"], "correct_answer": 1}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write quiz file: %v", err)
	}

	questions, err := loadQuestions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 || questions[0].Text != "Largest ocean?" || questions[0].CorrectAnswer != 1 {
		t.Fatalf("unexpected quiz: %#v", questions)
	}
}

func TestLoadQuestions_RejectsBadFiles(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"empty quiz", `[]`},
		{"single option", `[{"question": "Q?", "options": ["A"], "correct_answer": 0}]`},
		{"empty text", `[{"question": "", "options": ["A", "B"], "correct_answer": 0}]`},
		{"index out of range", `[{"question": "Q?", "options": ["A", "B"], "correct_answer": 2}]`},
		{"negative index", `[{"question": "Q?", "options": ["A", "B"], "correct_answer": -1}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "quiz.json")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatalf("write quiz file: %v", err)
			}

			if _, err := loadQuestions(path); err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
		})
	}
}

func TestLoadQuestions_MissingFile(t *testing.T) {
	if _, err := loadQuestions(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
