package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"pawquest/internal/database"
	"pawquest/internal/models"
)

// QuestionRepository handles question content database operations
type QuestionRepository struct {
	db database.DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetQuestions retrieves all questions for a path at the given difficulty.
// Difficulty 0 means any difficulty, used by the relaxed-filter fallback.
func (r *QuestionRepository) GetQuestions(path models.PathType, difficulty int) ([]models.Question, error) {
	query := `
		SELECT id, path_type, difficulty, prompt, choices, answer_index, created_at
		FROM questions
		WHERE path_type = ?
	`
	args := []interface{}{string(path)}

	if difficulty > 0 {
		query += " AND difficulty = ?"
		args = append(args, difficulty)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var choicesJSON string
		err := rows.Scan(&q.ID, &q.PathType, &q.Difficulty, &q.Prompt, &choicesJSON, &q.AnswerIndex, &q.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(choicesJSON), &q.Choices); err != nil {
			return nil, fmt.Errorf("failed to decode choices for question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetByID retrieves a single question
func (r *QuestionRepository) GetByID(id int64) (*models.Question, error) {
	query := `
		SELECT id, path_type, difficulty, prompt, choices, answer_index, created_at
		FROM questions
		WHERE id = ?
	`

	q := &models.Question{}
	var choicesJSON string
	err := r.db.QueryRow(query, id).Scan(&q.ID, &q.PathType, &q.Difficulty, &q.Prompt, &choicesJSON, &q.AnswerIndex, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(choicesJSON), &q.Choices); err != nil {
		return nil, fmt.Errorf("failed to decode choices for question %d: %w", q.ID, err)
	}
	return q, nil
}

// Insert adds a question and returns it with its assigned id
func (r *QuestionRepository) Insert(q models.Question) (*models.Question, error) {
	choicesJSON, err := json.Marshal(q.Choices)
	if err != nil {
		return nil, fmt.Errorf("failed to encode choices: %w", err)
	}

	query := `
		INSERT INTO questions (path_type, difficulty, prompt, choices, answer_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	id, err := r.db.ExecReturningID(query, string(q.PathType), q.Difficulty, q.Prompt, string(choicesJSON), q.AnswerIndex, createdAt)
	if err != nil {
		return nil, err
	}

	q.ID = id
	q.CreatedAt = createdAt
	return &q, nil
}

// Count returns the total number of questions in the bank
func (r *QuestionRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count)
	return count, err
}

// All retrieves the entire question bank, used by backup export
func (r *QuestionRepository) All() ([]models.Question, error) {
	var out []models.Question
	for _, path := range models.AllPaths {
		questions, err := r.GetQuestions(path, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, questions...)
	}
	return out, nil
}
