package interview

import (
	"github.com/google/uuid"

	"github.com/vettalabs/vetta/internal/domain"
)

// TurnResult is what every orchestrator operation returns to the transport
// layer: the stage is always set, everything else depends on the branch
// taken.
type TurnResult struct {
	SessionID uuid.UUID    `json:"session_id"`
	Stage     domain.Stage `json:"stage"`

	// Question is the next question to put to the candidate, when one was
	// delivered this turn.
	Question string `json:"question,omitempty"`

	// Score and Feedback describe the answer processed this turn.
	Score    *int   `json:"score,omitempty"`
	Feedback string `json:"feedback,omitempty"`

	IsFollowup    bool `json:"is_followup,omitempty"`
	FollowupCount int  `json:"followup_count,omitempty"`

	RemainingQuestions *int `json:"remaining_questions,omitempty"`
	TargetQuestions    int  `json:"target_questions,omitempty"`

	// Message carries phase-transition announcements instead of a question.
	Message string `json:"message,omitempty"`

	FinalScore    *int     `json:"final_score,omitempty"`
	FinalFeedback string   `json:"final_feedback,omitempty"`
	AverageScore  *float64 `json:"average_score,omitempty"`
}
