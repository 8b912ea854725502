package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/vettalabs/vetta/internal/api/v1"
	"github.com/vettalabs/vetta/internal/domain"
	"github.com/vettalabs/vetta/internal/interview"
)

// ---------------------------------------------------------------------------
// TestStartInterview
// ---------------------------------------------------------------------------

func TestStartInterview(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var startCalled bool
		_, api := humatest.New(t)
		svc := &mockInterviewService{
			startInterviewFunc: func(_ context.Context, resume, reqs, name string) (*domain.Session, error) {
				startCalled = true
				assert.Equal(t, "ten years of backend work", resume)
				assert.Equal(t, "senior Go engineer", reqs)
				assert.Equal(t, "Ada", name)
				s := domain.NewSession(resume, reqs, name)
				s.Stage = domain.StageOpening
				return s, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews", map[string]any{
			"resume_content":   "ten years of backend work",
			"job_requirements": "senior Go engineer",
			"candidate_name":   "Ada",
		})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, startCalled, "svc.StartInterview must be invoked")

		var body domain.Session
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.StageOpening, body.Stage)
		assert.NotEqual(t, uuid.Nil, body.ID)
	})

	t.Run("empty_resume_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterInterviewRoutes(api, &mockInterviewService{})

		resp := api.Post("/interviews", map[string]any{
			"resume_content": "",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("service_failure_returns_500", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			startInterviewFunc: func(_ context.Context, _, _, _ string) (*domain.Session, error) {
				return nil, errors.New("store unavailable")
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews", map[string]any{
			"resume_content": "some resume",
		})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestAdvancePastOpening
// ---------------------------------------------------------------------------

func TestAdvancePastOpening(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			advancePastOpeningFunc: func(_ context.Context, id uuid.UUID) (*interview.TurnResult, error) {
				assert.Equal(t, sessionID, id)
				return &interview.TurnResult{
					SessionID: id,
					Stage:     domain.StageSelfIntro,
					Question:  "please introduce yourself",
				}, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/" + sessionID.String() + "/opening")

		require.Equal(t, http.StatusOK, resp.Code)

		var body interview.TurnResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.StageSelfIntro, body.Stage)
		assert.Equal(t, "please introduce yourself", body.Question)
	})

	t.Run("unknown_session_returns_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			advancePastOpeningFunc: func(_ context.Context, _ uuid.UUID) (*interview.TurnResult, error) {
				return nil, domain.ErrNotFound
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/" + uuid.NewString() + "/opening")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("wrong_stage_returns_409", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			advancePastOpeningFunc: func(_ context.Context, _ uuid.UUID) (*interview.TurnResult, error) {
				return nil, domain.ErrInvalidStage
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/" + sessionID.String() + "/opening")

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestSubmitAnswers
// ---------------------------------------------------------------------------

func TestSubmitSelfIntroduction(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			submitSelfIntroductionFunc: func(_ context.Context, id uuid.UUID, answer string) (*interview.TurnResult, error) {
				assert.Equal(t, sessionID, id)
				assert.Equal(t, "I build distributed systems", answer)
				return &interview.TurnResult{
					SessionID:       id,
					Stage:           domain.StageProjectQNA,
					Question:        "tell me about your largest project",
					TargetQuestions: 5,
				}, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/"+sessionID.String()+"/self-introduction", map[string]any{
			"answer": "I build distributed systems",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body interview.TurnResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.StageProjectQNA, body.Stage)
		assert.Equal(t, 5, body.TargetQuestions)
	})

	t.Run("empty_answer_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterInterviewRoutes(api, &mockInterviewService{})

		resp := api.Post("/interviews/"+sessionID.String()+"/self-introduction", map[string]any{
			"answer": "",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestSubmitProjectAnswer(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()

	t.Run("returns_followup", func(t *testing.T) {
		t.Parallel()

		score := 85
		_, api := humatest.New(t)
		svc := &mockInterviewService{
			submitProjectAnswerFunc: func(_ context.Context, id uuid.UUID, _ string) (*interview.TurnResult, error) {
				return &interview.TurnResult{
					SessionID:     id,
					Stage:         domain.StageProjectQNA,
					Question:      "how did you shard the data?",
					Score:         &score,
					Feedback:      "strong answer",
					IsFollowup:    true,
					FollowupCount: 1,
				}, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/"+sessionID.String()+"/project-answers", map[string]any{
			"answer": "we scaled it to a million users",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body interview.TurnResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.IsFollowup)
		assert.Equal(t, 1, body.FollowupCount)
		require.NotNil(t, body.Score)
		assert.Equal(t, 85, *body.Score)
	})

	t.Run("wrong_stage_returns_409", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			submitProjectAnswerFunc: func(_ context.Context, _ uuid.UUID, _ string) (*interview.TurnResult, error) {
				return nil, domain.ErrInvalidStage
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/"+sessionID.String()+"/project-answers", map[string]any{
			"answer": "an answer",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestStartTechnicalInterview(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		remaining := 2
		_, api := humatest.New(t)
		svc := &mockInterviewService{
			startTechnicalInterviewFunc: func(_ context.Context, id uuid.UUID, types []string, counts map[string]int) (*interview.TurnResult, error) {
				assert.Equal(t, []string{"concurrency"}, types)
				assert.Equal(t, map[string]int{"concurrency": 3}, counts)
				return &interview.TurnResult{
					SessionID:          id,
					Stage:              domain.StageTechnicalQNA,
					Question:           "how does a mutex work?",
					RemainingQuestions: &remaining,
				}, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/"+sessionID.String()+"/technical", map[string]any{
			"question_types": []string{"concurrency"},
			"counts":         map[string]int{"concurrency": 3},
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body interview.TurnResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "how does a mutex work?", body.Question)
		require.NotNil(t, body.RemainingQuestions)
		assert.Equal(t, 2, *body.RemainingQuestions)
	})
}

func TestSubmitTechnicalAnswer(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()

	t.Run("concludes_when_pool_empty", func(t *testing.T) {
		t.Parallel()

		score := 78
		_, api := humatest.New(t)
		svc := &mockInterviewService{
			submitTechnicalAnswerFunc: func(_ context.Context, id uuid.UUID, _ string) (*interview.TurnResult, error) {
				return &interview.TurnResult{
					SessionID: id,
					Stage:     domain.StageConcluded,
					Score:     &score,
					Message:   "all technical questions answered",
				}, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/"+sessionID.String()+"/technical-answers", map[string]any{
			"answer": "the scheduler parks the goroutine",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body interview.TurnResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.StageConcluded, body.Stage)
		assert.NotEmpty(t, body.Message)
	})
}

// ---------------------------------------------------------------------------
// TestConcludeInterview
// ---------------------------------------------------------------------------

func TestConcludeInterview(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		finalScore := 88
		avg := 84.5
		_, api := humatest.New(t)
		svc := &mockInterviewService{
			concludeInterviewFunc: func(_ context.Context, id uuid.UUID) (*interview.TurnResult, error) {
				return &interview.TurnResult{
					SessionID:     id,
					Stage:         domain.StageConcluded,
					FinalScore:    &finalScore,
					FinalFeedback: "hire",
					AverageScore:  &avg,
				}, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/" + sessionID.String() + "/conclusion")

		require.Equal(t, http.StatusOK, resp.Code)

		var body interview.TurnResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotNil(t, body.FinalScore)
		assert.Equal(t, 88, *body.FinalScore)
		assert.Equal(t, "hire", body.FinalFeedback)
	})

	t.Run("already_concluded_returns_409", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			concludeInterviewFunc: func(_ context.Context, _ uuid.UUID) (*interview.TurnResult, error) {
				return nil, domain.ErrConcluded
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Post("/interviews/" + sessionID.String() + "/conclusion")

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestGetInterview
// ---------------------------------------------------------------------------

func TestGetInterview(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		sess := domain.NewSession("resume", "reqs", "Ada")
		_, api := humatest.New(t)
		svc := &mockInterviewService{
			getSessionFunc: func(_ context.Context, id uuid.UUID) (*domain.Session, error) {
				assert.Equal(t, sess.ID, id)
				return sess, nil
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Get("/interviews/" + sess.ID.String())

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Session
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, sess.ID, body.ID)
		assert.Equal(t, domain.StageResumeSubmitted, body.Stage)
	})

	t.Run("unknown_session_returns_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockInterviewService{
			getSessionFunc: func(_ context.Context, _ uuid.UUID) (*domain.Session, error) {
				return nil, domain.ErrNotFound
			},
		}
		v1.RegisterInterviewRoutes(api, svc)

		resp := api.Get("/interviews/" + uuid.NewString())

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("invalid_id_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterInterviewRoutes(api, &mockInterviewService{})

		resp := api.Get("/interviews/not-a-uuid")

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}
