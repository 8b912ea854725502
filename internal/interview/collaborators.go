package interview

import (
	"context"

	"github.com/google/uuid"

	"github.com/vettalabs/vetta/internal/domain"
)

// Generator produces conversational prompts: the opening remark, the
// self-introduction prompt, resume-driven project questions, and follow-up
// probes.
type Generator interface {
	OpeningRemark(ctx context.Context, resumeContent, jobRequirements string) (string, error)
	SelfIntroPrompt(ctx context.Context) (string, error)
	ProjectQuestions(ctx context.Context, s *domain.Session, count int) ([]string, error)
	FollowupQuestion(ctx context.Context, originalQuestion, answer, reason string) (string, error)
}

// Evaluation is the structured result of scoring a single answer.
// FollowupReason is nil when the evaluator saw nothing worth probing.
type Evaluation struct {
	Score          int
	Feedback       string
	FollowupReason *string
}

// Evaluator scores and critiques a single answer against the resume.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer, resumeContext string) (Evaluation, error)
}

// QuestionSource retrieves technical questions by semantic relevance.
// countsByType maps question type to how many questions of that type to
// return; the result list is ordered best-match first.
type QuestionSource interface {
	Select(ctx context.Context, queryContext string, questionTypes []string, countsByType map[string]int) ([]string, error)
}

// Conclusion is the summarizer's final verdict over the whole interview.
type Conclusion struct {
	Score    int
	Feedback string
}

// Summarizer produces the final score and feedback from the full session.
type Summarizer interface {
	Conclude(ctx context.Context, s *domain.Session) (Conclusion, error)
}

// SessionStore is the two-tier session persistence boundary the orchestrator
// writes through after every mutation.
type SessionStore interface {
	GetOrLoad(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
}
