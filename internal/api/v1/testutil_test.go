package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/vettalabs/vetta/internal/domain"
	"github.com/vettalabs/vetta/internal/interview"
)

// ---------------------------------------------------------------------------
// Mock InterviewService
// ---------------------------------------------------------------------------

type mockInterviewService struct {
	startInterviewFunc          func(ctx context.Context, resumeContent, jobRequirements, candidateName string) (*domain.Session, error)
	advancePastOpeningFunc      func(ctx context.Context, id uuid.UUID) (*interview.TurnResult, error)
	submitSelfIntroductionFunc  func(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error)
	submitProjectAnswerFunc     func(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error)
	startTechnicalInterviewFunc func(ctx context.Context, id uuid.UUID, questionTypes []string, counts map[string]int) (*interview.TurnResult, error)
	submitTechnicalAnswerFunc   func(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error)
	concludeInterviewFunc       func(ctx context.Context, id uuid.UUID) (*interview.TurnResult, error)
	getSessionFunc              func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

func (m *mockInterviewService) StartInterview(ctx context.Context, resumeContent, jobRequirements, candidateName string) (*domain.Session, error) {
	return m.startInterviewFunc(ctx, resumeContent, jobRequirements, candidateName)
}

func (m *mockInterviewService) AdvancePastOpening(ctx context.Context, id uuid.UUID) (*interview.TurnResult, error) {
	return m.advancePastOpeningFunc(ctx, id)
}

func (m *mockInterviewService) SubmitSelfIntroduction(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error) {
	return m.submitSelfIntroductionFunc(ctx, id, answer)
}

func (m *mockInterviewService) SubmitProjectAnswer(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error) {
	return m.submitProjectAnswerFunc(ctx, id, answer)
}

func (m *mockInterviewService) StartTechnicalInterview(ctx context.Context, id uuid.UUID, questionTypes []string, counts map[string]int) (*interview.TurnResult, error) {
	return m.startTechnicalInterviewFunc(ctx, id, questionTypes, counts)
}

func (m *mockInterviewService) SubmitTechnicalAnswer(ctx context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error) {
	return m.submitTechnicalAnswerFunc(ctx, id, answer)
}

func (m *mockInterviewService) ConcludeInterview(ctx context.Context, id uuid.UUID) (*interview.TurnResult, error) {
	return m.concludeInterviewFunc(ctx, id)
}

func (m *mockInterviewService) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return m.getSessionFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock QuestionBank
// ---------------------------------------------------------------------------

type mockQuestionBank struct {
	importFileFunc func(ctx context.Context, path string) (int, error)
	countFunc      func() int
}

func (m *mockQuestionBank) ImportFile(ctx context.Context, path string) (int, error) {
	return m.importFileFunc(ctx, path)
}

func (m *mockQuestionBank) Count() int {
	return m.countFunc()
}
