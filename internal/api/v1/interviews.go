package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/vettalabs/vetta/internal/domain"
	"github.com/vettalabs/vetta/internal/interview"
)

type StartInterviewInput struct {
	Body struct {
		ResumeContent   string `json:"resume_content" minLength:"1" doc:"Plain-text resume"`
		JobRequirements string `json:"job_requirements,omitempty" doc:"Job requirements the interview targets"`
		CandidateName   string `json:"candidate_name,omitempty" maxLength:"200" doc:"Candidate display name"`
	}
}

type StartInterviewOutput struct {
	Body *domain.Session
}

type SessionIDInput struct {
	ID uuid.UUID `path:"id" doc:"Interview session ID"`
}

type AnswerInput struct {
	ID   uuid.UUID `path:"id" doc:"Interview session ID"`
	Body struct {
		Answer string `json:"answer" minLength:"1" doc:"Candidate answer"`
	}
}

type StartTechnicalInput struct {
	ID   uuid.UUID `path:"id" doc:"Interview session ID"`
	Body struct {
		QuestionTypes []string       `json:"question_types,omitempty" doc:"Question categories to draw from"`
		Counts        map[string]int `json:"counts,omitempty" doc:"Requested question count per category"`
	}
}

type TurnOutput struct {
	Body *interview.TurnResult
}

type GetInterviewOutput struct {
	Body *domain.Session
}

func RegisterInterviewRoutes(api huma.API, svc InterviewService) {
	huma.Register(api, huma.Operation{
		OperationID: "start-interview",
		Method:      http.MethodPost,
		Path:        "/interviews",
		Summary:     "Start a new interview from a resume",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *StartInterviewInput) (*StartInterviewOutput, error) {
		s, err := svc.StartInterview(ctx, input.Body.ResumeContent, input.Body.JobRequirements, input.Body.CandidateName)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to start interview", err)
		}

		return &StartInterviewOutput{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "advance-past-opening",
		Method:      http.MethodPost,
		Path:        "/interviews/{id}/opening",
		Summary:     "Acknowledge the opening and request the self-introduction prompt",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *SessionIDInput) (*TurnOutput, error) {
		res, err := svc.AdvancePastOpening(ctx, input.ID)
		if err != nil {
			return nil, mapInterviewError(err, "failed to advance interview")
		}

		return &TurnOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-self-introduction",
		Method:      http.MethodPost,
		Path:        "/interviews/{id}/self-introduction",
		Summary:     "Submit the candidate's self-introduction",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *AnswerInput) (*TurnOutput, error) {
		res, err := svc.SubmitSelfIntroduction(ctx, input.ID, input.Body.Answer)
		if err != nil {
			return nil, mapInterviewError(err, "failed to record self-introduction")
		}

		return &TurnOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-project-answer",
		Method:      http.MethodPost,
		Path:        "/interviews/{id}/project-answers",
		Summary:     "Submit an answer in the project phase",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *AnswerInput) (*TurnOutput, error) {
		res, err := svc.SubmitProjectAnswer(ctx, input.ID, input.Body.Answer)
		if err != nil {
			return nil, mapInterviewError(err, "failed to record project answer")
		}

		return &TurnOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "start-technical-interview",
		Method:      http.MethodPost,
		Path:        "/interviews/{id}/technical",
		Summary:     "Start the technical phase and receive the first question",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *StartTechnicalInput) (*TurnOutput, error) {
		res, err := svc.StartTechnicalInterview(ctx, input.ID, input.Body.QuestionTypes, input.Body.Counts)
		if err != nil {
			return nil, mapInterviewError(err, "failed to start technical phase")
		}

		return &TurnOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-technical-answer",
		Method:      http.MethodPost,
		Path:        "/interviews/{id}/technical-answers",
		Summary:     "Submit an answer in the technical phase",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *AnswerInput) (*TurnOutput, error) {
		res, err := svc.SubmitTechnicalAnswer(ctx, input.ID, input.Body.Answer)
		if err != nil {
			return nil, mapInterviewError(err, "failed to record technical answer")
		}

		return &TurnOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "conclude-interview",
		Method:      http.MethodPost,
		Path:        "/interviews/{id}/conclusion",
		Summary:     "Conclude the interview and produce the final verdict",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *SessionIDInput) (*TurnOutput, error) {
		res, err := svc.ConcludeInterview(ctx, input.ID)
		if err != nil {
			return nil, mapInterviewError(err, "failed to conclude interview")
		}

		return &TurnOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-interview",
		Method:      http.MethodGet,
		Path:        "/interviews/{id}",
		Summary:     "Get the full interview session record",
		Tags:        []string{"Interviews"},
	}, func(ctx context.Context, input *SessionIDInput) (*GetInterviewOutput, error) {
		s, err := svc.GetSession(ctx, input.ID)
		if err != nil {
			return nil, mapInterviewError(err, "failed to load interview")
		}

		return &GetInterviewOutput{Body: s}, nil
	})
}

// mapInterviewError translates domain errors into HTTP problem responses.
func mapInterviewError(err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("interview session not found")
	case errors.Is(err, domain.ErrInvalidStage):
		return huma.Error409Conflict("operation not valid for the session's current stage", err)
	case errors.Is(err, domain.ErrConcluded):
		return huma.Error409Conflict("interview already concluded", err)
	default:
		return huma.Error500InternalServerError(fallback, err)
	}
}
