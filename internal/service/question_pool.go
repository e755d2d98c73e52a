package service

import (
	"fmt"
	"math/rand"

	"pawquest/internal/models"
)

// QuestionSource provides question content for a path. Difficulty 0 means
// any difficulty. The database-backed QuestionRepository satisfies this.
type QuestionSource interface {
	GetQuestions(path models.PathType, difficulty int) ([]models.Question, error)
}

// QuestionPool selects non-repeating questions for a path and difficulty
// band. Selection is uniform-random among eligible questions; every call
// reshuffles, and an excluded id is never returned.
type QuestionPool struct {
	source QuestionSource
	rng    *rand.Rand
}

// NewQuestionPool creates a pool over the given content source
func NewQuestionPool(source QuestionSource) *QuestionPool {
	return &QuestionPool{source: source}
}

// NewQuestionPoolWithSeed creates a pool with a deterministic shuffle,
// used in tests
func NewQuestionPoolWithSeed(source QuestionSource, seed int64) *QuestionPool {
	return &QuestionPool{source: source, rng: rand.New(rand.NewSource(seed))}
}

// NextBatch returns up to count shuffled eligible questions for the path at
// the given difficulty, never including an excluded id and never repeating
// an id within the batch. When the difficulty band cannot fill the batch the
// filter is relaxed to any difficulty and the shortfall is topped up from
// the relaxed pool before accepting a short batch; a batch shorter than
// count (including empty) is still not an error — callers handle shortage.
func (p *QuestionPool) NextBatch(path models.PathType, difficulty int, exclude map[int64]bool, count int) ([]models.Question, error) {
	if count <= 0 {
		return nil, nil
	}

	eligible, err := p.eligible(path, difficulty, exclude)
	if err != nil {
		return nil, err
	}

	// Band short: relax the difficulty filter and top up before accepting
	// shortage. Band questions keep priority over relaxed ones.
	if len(eligible) < count && difficulty > 0 {
		relaxed, err := p.eligible(path, 0, exclude)
		if err != nil {
			return nil, err
		}
		inBand := make(map[int64]bool, len(eligible))
		for _, q := range eligible {
			inBand[q.ID] = true
		}
		p.shuffle(relaxed)
		for _, q := range relaxed {
			if len(eligible) >= count {
				break
			}
			if !inBand[q.ID] {
				eligible = append(eligible, q)
			}
		}
	}

	p.shuffle(eligible)

	if len(eligible) > count {
		eligible = eligible[:count]
	}
	return eligible, nil
}

// eligible fetches questions and filters out excluded ids
func (p *QuestionPool) eligible(path models.PathType, difficulty int, exclude map[int64]bool) ([]models.Question, error) {
	questions, err := p.source.GetQuestions(path, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for %s: %w", path, err)
	}

	eligible := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if !exclude[q.ID] {
			eligible = append(eligible, q)
		}
	}
	return eligible, nil
}

func (p *QuestionPool) shuffle(questions []models.Question) {
	swap := func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	}
	if p.rng != nil {
		p.rng.Shuffle(len(questions), swap)
		return
	}
	rand.Shuffle(len(questions), swap)
}
