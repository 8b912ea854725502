package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vettalabs/vetta/internal/domain"
)

// Texts used when a collaborator fails or a transcript is malformed. Only
// session-not-found and wrong-stage errors ever surface to the caller;
// everything else degrades to these defaults so the interview never stalls.
const (
	defaultOpeningRemark = "Welcome, and thank you for coming in. We'll start with a short self-introduction, " +
		"then walk through your project experience, and finish with some technical questions."
	defaultSelfIntroPrompt = "To get started, please give a brief introduction of yourself and your background."

	projectQuestionSentinel   = "a question about your project experience"
	technicalQuestionSentinel = "a technical question"

	projectPhaseCompleteMessage   = "Project questions complete. Moving on to the technical interview."
	technicalPhaseCompleteMessage = "All technical questions answered. The interview is complete."

	genericAnswerFeedback      = "The answer broadly meets expectations."
	fallbackConclusionFeedback = "Interview complete. Keep building on your technical depth."

	fallbackFinalScore = 70
)

// Orchestrator drives a session through the interview protocol. It is the
// only component that mutates a session's stage. All mutating operations on
// one session id are serialized by a per-session lock; operations on
// different sessions run in parallel.
type Orchestrator struct {
	store      SessionStore
	generator  Generator
	evaluator  Evaluator
	summarizer Summarizer
	pools      *PoolManager
	locks      *sessionLocks
}

func NewOrchestrator(store SessionStore, generator Generator, evaluator Evaluator, summarizer Summarizer, source QuestionSource) *Orchestrator {
	return &Orchestrator{
		store:      store,
		generator:  generator,
		evaluator:  evaluator,
		summarizer: summarizer,
		pools:      NewPoolManager(generator, source),
		locks:      newSessionLocks(),
	}
}

// StartInterview creates a session, generates the opening remark, and moves
// the session to the opening stage.
func (o *Orchestrator) StartInterview(ctx context.Context, resumeContent, jobRequirements, candidateName string) (*domain.Session, error) {
	s := domain.NewSession(resumeContent, jobRequirements, candidateName)

	opening, err := o.generator.OpeningRemark(ctx, resumeContent, jobRequirements)
	if err != nil {
		log.Warn().Err(err).Stringer("session_id", s.ID).Msg("opening remark generation failed, using default")
		opening = defaultOpeningRemark
	}

	s.AddMessage(domain.RoleSystem, opening)
	s.Stage = domain.StageOpening

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}

	log.Info().Stringer("session_id", s.ID).Str("candidate", candidateName).Msg("interview started")

	return s, nil
}

// AdvancePastOpening moves an opening-stage session into self-introduction,
// delivering the self-introduction prompt.
func (o *Orchestrator) AdvancePastOpening(ctx context.Context, id uuid.UUID) (*TurnResult, error) {
	release := o.locks.acquire(id)
	defer release()

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStage(s, domain.StageOpening); err != nil {
		return nil, err
	}

	prompt, err := o.generator.SelfIntroPrompt(ctx)
	if err != nil {
		log.Warn().Err(err).Stringer("session_id", id).Msg("self-intro prompt generation failed, using default")
		prompt = defaultSelfIntroPrompt
	}

	s.AddMessage(domain.RoleInterviewer, prompt)
	s.Stage = domain.StageSelfIntro

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}

	return &TurnResult{SessionID: s.ID, Stage: s.Stage, Question: prompt}, nil
}

// SubmitSelfIntroduction records the candidate's self-introduction, derives
// the project-question target from resume length, fills the project pool, and
// delivers the first project question.
func (o *Orchestrator) SubmitSelfIntroduction(ctx context.Context, id uuid.UUID, answer string) (*TurnResult, error) {
	release := o.locks.acquire(id)
	defer release()

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStage(s, domain.StageSelfIntro); err != nil {
		return nil, err
	}

	s.AddMessage(domain.RoleHuman, answer)
	s.TargetProjectQuestions = domain.TargetQuestionsForResume(s.ResumeContent)

	o.pools.FillProjectPool(ctx, s)

	question, ok := s.PopProjectQuestion()
	if !ok {
		// The pool is always seeded above; this is a last-resort guard.
		question = defaultProjectQuestions()[0]
	}

	s.AddMessage(domain.RoleInterviewer, question)
	s.Stage = domain.StageProjectQNA
	s.CurrentFollowupCount = 0

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}

	return &TurnResult{
		SessionID:       s.ID,
		Stage:           s.Stage,
		Question:        question,
		TargetQuestions: s.TargetProjectQuestions,
	}, nil
}

// SubmitProjectAnswer evaluates a project answer, records it, and decides the
// next move: a follow-up probe, the next pooled question, or the transition
// into the technical phase (reached when the target is met or the pool runs
// dry, whichever comes first).
func (o *Orchestrator) SubmitProjectAnswer(ctx context.Context, id uuid.UUID, answer string) (*TurnResult, error) {
	release := o.locks.acquire(id)
	defer release()

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStage(s, domain.StageProjectQNA); err != nil {
		return nil, err
	}

	question, ok := s.LastInterviewerMessage()
	if !ok {
		question = projectQuestionSentinel
	}

	s.AddMessage(domain.RoleHuman, answer)

	ev := o.evaluate(ctx, question, answer, s.ResumeContent)
	s.AddProjectQA(newQA(question, answer, ev))

	res := &TurnResult{
		SessionID: s.ID,
		Stage:     s.Stage,
		Score:     &ev.Score,
		Feedback:  ev.Feedback,
	}

	// Follow-up branch: press a strong answer for depth, bounded per base
	// question.
	if ShouldFollowUp(ev.Score, ev.FollowupReason, s.CurrentFollowupCount) {
		followup, fErr := o.generator.FollowupQuestion(ctx, question, answer, *ev.FollowupReason)
		if fErr != nil {
			log.Warn().Err(fErr).Stringer("session_id", id).Msg("follow-up generation failed, moving on")
		} else {
			s.CurrentFollowupCount++
			s.AddMessage(domain.RoleInterviewer, followup)

			res.Question = followup
			res.IsFollowup = true
			res.FollowupCount = s.CurrentFollowupCount

			if err := o.save(ctx, s); err != nil {
				return nil, err
			}
			return res, nil
		}
	}

	s.CurrentFollowupCount = 0

	// Phase-complete branch: target met.
	if s.ProjectQuestionsAsked >= s.TargetProjectQuestions {
		s.Stage = domain.StageTechnicalQNA
		res.Stage = s.Stage
		res.Message = projectPhaseCompleteMessage

		if err := o.save(ctx, s); err != nil {
			return nil, err
		}
		return res, nil
	}

	// Next-question branch: deliver the next pooled base question.
	if next, popped := s.PopProjectQuestion(); popped {
		s.AddMessage(domain.RoleInterviewer, next)
		res.Question = next

		if err := o.save(ctx, s); err != nil {
			return nil, err
		}
		return res, nil
	}

	// Pool-exhausted branch: exhaustion overrides the target count.
	s.Stage = domain.StageTechnicalQNA
	res.Stage = s.Stage
	res.Message = projectPhaseCompleteMessage

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}
	return res, nil
}

// StartTechnicalInterview retrieves technical questions for the requested
// types and counts, delivers the first, and pools the rest.
func (o *Orchestrator) StartTechnicalInterview(ctx context.Context, id uuid.UUID, questionTypes []string, counts map[string]int) (*TurnResult, error) {
	release := o.locks.acquire(id)
	defer release()

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStage(s, domain.StageTechnicalQNA); err != nil {
		return nil, err
	}

	question := o.pools.FillTechnicalPool(ctx, s, questionTypes, counts)
	s.AddMessage(domain.RoleInterviewer, question)

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}

	remaining := len(s.TechnicalQuestionPool)

	return &TurnResult{
		SessionID:          s.ID,
		Stage:              s.Stage,
		Question:           question,
		RemainingQuestions: &remaining,
	}, nil
}

// SubmitTechnicalAnswer evaluates a technical answer and either delivers the
// next pooled question or concludes the interview. Technical questions have
// no follow-up path.
func (o *Orchestrator) SubmitTechnicalAnswer(ctx context.Context, id uuid.UUID, answer string) (*TurnResult, error) {
	release := o.locks.acquire(id)
	defer release()

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStage(s, domain.StageTechnicalQNA); err != nil {
		return nil, err
	}

	question, ok := s.LastInterviewerMessage()
	if !ok {
		question = technicalQuestionSentinel
	}

	s.AddMessage(domain.RoleHuman, answer)

	ev := o.evaluate(ctx, question, answer, s.ResumeContent)
	ev.FollowupReason = nil
	s.AddTechnicalQA(newQA(question, answer, ev))

	res := &TurnResult{
		SessionID: s.ID,
		Stage:     s.Stage,
		Score:     &ev.Score,
		Feedback:  ev.Feedback,
	}

	if next, popped := s.PopTechnicalQuestion(); popped {
		s.AddMessage(domain.RoleInterviewer, next)
		remaining := len(s.TechnicalQuestionPool)

		res.Question = next
		res.RemainingQuestions = &remaining

		if err := o.save(ctx, s); err != nil {
			return nil, err
		}
		return res, nil
	}

	s.Stage = domain.StageConcluded
	res.Stage = s.Stage
	res.Message = technicalPhaseCompleteMessage

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}
	return res, nil
}

// ConcludeInterview produces the final verdict over the full QA history.
// It is callable from any stage so an interviewer can end a session early,
// but a session that already has a final verdict cannot be re-concluded.
// When the summarizer fails, the final score falls back to the running
// average (or 70 when nothing was scored).
func (o *Orchestrator) ConcludeInterview(ctx context.Context, id uuid.UUID) (*TurnResult, error) {
	release := o.locks.acquire(id)
	defer release()

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.FinalScore != nil {
		return nil, fmt.Errorf("interview: session %s: %w", id, domain.ErrConcluded)
	}

	conclusion, err := o.summarizer.Conclude(ctx, s)
	if err != nil {
		log.Warn().Err(err).Stringer("session_id", id).Msg("summarizer failed, falling back to running average")

		score := fallbackFinalScore
		if avg := s.AverageScore(); avg != nil {
			score = int(*avg)
		}
		conclusion = Conclusion{Score: score, Feedback: fallbackConclusionFeedback}
	}

	s.FinalScore = &conclusion.Score
	s.FinalFeedback = &conclusion.Feedback
	s.Stage = domain.StageConcluded

	if err := o.save(ctx, s); err != nil {
		return nil, err
	}

	log.Info().Stringer("session_id", id).Int("final_score", conclusion.Score).Msg("interview concluded")

	return &TurnResult{
		SessionID:     s.ID,
		Stage:         s.Stage,
		FinalScore:    s.FinalScore,
		FinalFeedback: conclusion.Feedback,
		AverageScore:  s.AverageScore(),
	}, nil
}

// GetSession returns the current session record.
func (o *Orchestrator) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return o.load(ctx, id)
}

// evaluate scores an answer, degrading to a neutral default when the
// evaluator fails so the flow never stalls on a collaborator fault.
func (o *Orchestrator) evaluate(ctx context.Context, question, answer, resumeContext string) Evaluation {
	ev, err := o.evaluator.Evaluate(ctx, question, answer, resumeContext)
	if err != nil {
		log.Warn().Err(err).Msg("answer evaluation failed, using neutral default")
		return Evaluation{Score: fallbackFinalScore, Feedback: genericAnswerFeedback}
	}
	return ev
}

func (o *Orchestrator) load(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s, err := o.store.GetOrLoad(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("interview: load session %s: %w", id, err)
	}
	return s, nil
}

// save writes the session through both store tiers. Persistence is
// must-succeed: a failed write fails the request rather than diverging the
// in-memory and durable copies.
func (o *Orchestrator) save(ctx context.Context, s *domain.Session) error {
	if err := o.store.Put(ctx, s); err != nil {
		return fmt.Errorf("interview: persist session %s: %w", s.ID, err)
	}
	return nil
}

func requireStage(s *domain.Session, want domain.Stage) error {
	if s.Stage != want {
		return fmt.Errorf("interview: session %s is in stage %q, expected %q: %w", s.ID, s.Stage, want, domain.ErrInvalidStage)
	}
	return nil
}

func newQA(question, answer string, ev Evaluation) domain.QuestionAnswer {
	score := ev.Score
	feedback := ev.Feedback
	return domain.QuestionAnswer{
		Question:  question,
		Answer:    answer,
		Score:     &score,
		Feedback:  &feedback,
		Timestamp: time.Now(),
	}
}
