package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Question is one entry of the quiz played by every game. The quiz is
// loaded once at startup and shared, immutable, by all games.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"` // index into Options
}

// defaultQuiz is used when no --questions file is provided.
var defaultQuiz = []Question{
	{
		Text:          "What is the capital of France?",
		Options:       []string{"Berlin", "Madrid", "Paris", "Rome"},
		CorrectAnswer: 2,
	},
	{
		Text:          "Which planet is known as the Red Planet?",
		Options:       []string{"Earth", "Mars", "Jupiter", "Venus"},
		CorrectAnswer: 1,
	},
	{
		Text:          "What is 2 + 2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: 1,
	},
}

func loadQuestions(path string) ([]Question, error) {
	if path == "" {
		return defaultQuiz, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("invalid quiz file %s: %w", path, err)
	}

	if err := validateQuestions(questions); err != nil {
		return nil, fmt.Errorf("invalid quiz file %s: %w", path, err)
	}

	return questions, nil
}

func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz must contain at least one question")
	}

	for i, q := range questions {
		if q.Text == "" {
			return fmt.Errorf("question %d: empty question text", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: at least two options required", i)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correct answer index %d out of range", i, q.CorrectAnswer)
		}
	}

	return nil
}
