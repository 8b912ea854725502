package interview_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vettalabs/vetta/internal/domain"
	"github.com/vettalabs/vetta/internal/interview"
)

// ---------------------------------------------------------------------------
// In-memory SessionStore
// ---------------------------------------------------------------------------

type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
	putErr   error
	puts     int
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (m *memStore) GetOrLoad(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) Put(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putErr != nil {
		return m.putErr
	}
	cp := *s
	m.sessions[s.ID] = &cp
	m.puts++
	return nil
}

// ---------------------------------------------------------------------------
// Mock collaborators — func fields, zero-value methods return fixed defaults
// ---------------------------------------------------------------------------

type mockGenerator struct {
	openingFunc    func(ctx context.Context, resume, jobReq string) (string, error)
	selfIntroFunc  func(ctx context.Context) (string, error)
	projectQsFunc  func(ctx context.Context, s *domain.Session, count int) ([]string, error)
	followupFunc   func(ctx context.Context, question, answer, reason string) (string, error)
	followupCalled int
}

func (m *mockGenerator) OpeningRemark(ctx context.Context, resume, jobReq string) (string, error) {
	if m.openingFunc != nil {
		return m.openingFunc(ctx, resume, jobReq)
	}
	return "welcome to the interview", nil
}

func (m *mockGenerator) SelfIntroPrompt(ctx context.Context) (string, error) {
	if m.selfIntroFunc != nil {
		return m.selfIntroFunc(ctx)
	}
	return "please introduce yourself", nil
}

func (m *mockGenerator) ProjectQuestions(ctx context.Context, s *domain.Session, count int) ([]string, error) {
	if m.projectQsFunc != nil {
		return m.projectQsFunc(ctx, s, count)
	}
	return nil, nil
}

func (m *mockGenerator) FollowupQuestion(ctx context.Context, question, answer, reason string) (string, error) {
	m.followupCalled++
	if m.followupFunc != nil {
		return m.followupFunc(ctx, question, answer, reason)
	}
	return "can you go deeper on that?", nil
}

type mockEvaluator struct {
	evaluateFunc func(ctx context.Context, question, answer, resume string) (interview.Evaluation, error)
}

func (m *mockEvaluator) Evaluate(ctx context.Context, question, answer, resume string) (interview.Evaluation, error) {
	if m.evaluateFunc != nil {
		return m.evaluateFunc(ctx, question, answer, resume)
	}
	return interview.Evaluation{Score: 75, Feedback: "solid answer"}, nil
}

type mockSource struct {
	selectFunc func(ctx context.Context, queryContext string, types []string, counts map[string]int) ([]string, error)
}

func (m *mockSource) Select(ctx context.Context, queryContext string, types []string, counts map[string]int) ([]string, error) {
	if m.selectFunc != nil {
		return m.selectFunc(ctx, queryContext, types, counts)
	}
	return nil, nil
}

type mockSummarizer struct {
	concludeFunc func(ctx context.Context, s *domain.Session) (interview.Conclusion, error)
}

func (m *mockSummarizer) Conclude(ctx context.Context, s *domain.Session) (interview.Conclusion, error) {
	if m.concludeFunc != nil {
		return m.concludeFunc(ctx, s)
	}
	return interview.Conclusion{Score: 80, Feedback: "good interview"}, nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type harness struct {
	store      *memStore
	generator  *mockGenerator
	evaluator  *mockEvaluator
	summarizer *mockSummarizer
	source     *mockSource
	orch       *interview.Orchestrator
}

func newHarness() *harness {
	h := &harness{
		store:      newMemStore(),
		generator:  &mockGenerator{},
		evaluator:  &mockEvaluator{},
		summarizer: &mockSummarizer{},
		source:     &mockSource{},
	}
	h.orch = interview.NewOrchestrator(h.store, h.generator, h.evaluator, h.summarizer, h.source)
	return h
}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }
