package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vettalabs/vetta/internal/domain"
)

// defaultProjectQuestions seeds the project pool when generation fails or
// returns nothing. Exactly three questions regardless of target.
func defaultProjectQuestions() []string {
	return []string{
		"Tell me about the most challenging project on your resume.",
		"What was the hardest technical problem you ran into on that project?",
		"How did you end up solving it?",
	}
}

// fallbackTechnicalQuestion is the single question asked when retrieval
// returns nothing; the technical pool stays empty in that case.
const fallbackTechnicalQuestion = "Explain how a hash map works internally, including how collisions are handled."

// PoolManager fills and drains ordered question queues. Each pool is filled
// exactly once per phase and never replenished; draining is strict FIFO via
// the session's pop helpers.
type PoolManager struct {
	generator Generator
	source    QuestionSource
}

func NewPoolManager(generator Generator, source QuestionSource) *PoolManager {
	return &PoolManager{generator: generator, source: source}
}

// FillProjectPool populates the project pool on first entry into the project
// phase. A failed or empty generation seeds the fixed default set instead;
// the interview never stalls on a collaborator fault.
func (m *PoolManager) FillProjectPool(ctx context.Context, s *domain.Session) {
	if len(s.ProjectQuestionPool) > 0 {
		return
	}

	questions, err := m.generator.ProjectQuestions(ctx, s, s.TargetProjectQuestions)
	if err != nil {
		log.Warn().Err(err).Stringer("session_id", s.ID).Msg("project question generation failed, using defaults")
		questions = nil
	}
	if len(questions) == 0 {
		questions = defaultProjectQuestions()
	}

	s.ProjectQuestionPool = questions
}

// FillTechnicalPool retrieves technical questions, returns the first one to
// ask now, and stores the remainder as the technical pool. An empty or failed
// retrieval yields the single fallback question with an empty pool.
func (m *PoolManager) FillTechnicalPool(ctx context.Context, s *domain.Session, questionTypes []string, counts map[string]int) string {
	questions, err := m.source.Select(ctx, retrievalContext(s), questionTypes, counts)
	if err != nil {
		log.Warn().Err(err).Stringer("session_id", s.ID).Msg("technical question retrieval failed, using fallback")
		questions = nil
	}
	if len(questions) == 0 {
		s.TechnicalQuestionPool = nil
		return fallbackTechnicalQuestion
	}

	s.TechnicalQuestionPool = questions[1:]
	return questions[0]
}

// retrievalContext builds the semantic query for question retrieval: the job
// requirements plus the candidate's running average score, so retrieval can
// weight difficulty by demonstrated performance.
func retrievalContext(s *domain.Session) string {
	var parts []string
	if s.JobRequirements != "" {
		parts = append(parts, s.JobRequirements)
	}
	if avg := s.AverageScore(); avg != nil {
		parts = append(parts, fmt.Sprintf("candidate average score: %.1f", *avg))
	}
	return strings.Join(parts, "\n")
}
