package models

import "time"

// Question is a single quiz question from the content bank
type Question struct {
	ID          int64
	PathType    PathType
	Difficulty  int // 1-5, matching checkpoint difficulty bands
	Prompt      string
	Choices     []string
	AnswerIndex int
	CreatedAt   time.Time
}

// IsCorrect reports whether the given choice index answers the question
func (q *Question) IsCorrect(choice int) bool {
	return choice == q.AnswerIndex
}
