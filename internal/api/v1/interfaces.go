package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/vettalabs/vetta/internal/domain"
	"github.com/vettalabs/vetta/internal/interview"
)

// InterviewService abstracts orchestrator operations for handler testing.
// *interview.Orchestrator satisfies this interface.
type InterviewService interface {
	StartInterview(ctx context.Context, resumeContent, jobRequirements, candidateName string) (*domain.Session, error)
	AdvancePastOpening(ctx context.Context, id uuid.UUID) (*interview.TurnResult, error)
	SubmitSelfIntroduction(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error)
	SubmitProjectAnswer(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error)
	StartTechnicalInterview(ctx context.Context, id uuid.UUID, questionTypes []string, counts map[string]int) (*interview.TurnResult, error)
	SubmitTechnicalAnswer(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error)
	ConcludeInterview(ctx context.Context, id uuid.UUID) (*interview.TurnResult, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

// QuestionBank abstracts the question corpus for handler testing.
// *questionbank.Bank satisfies this interface.
type QuestionBank interface {
	ImportFile(ctx context.Context, path string) (int, error)
	Count() int
}
