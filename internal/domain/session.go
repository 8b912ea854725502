package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message roles in the interview transcript.
type Role string

const (
	RoleHuman       Role = "human"
	RoleInterviewer Role = "ai"
	RoleSystem      Role = "system"
)

// Message is one entry in a session's transcript. Insertion order is
// meaningful: the most recent interviewer message is the question the
// candidate is currently answering.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// QuestionAnswer records one evaluated answer. Records are created atomically
// when an answer is evaluated and never mutated afterwards.
type QuestionAnswer struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Score     *int      `json:"score,omitempty"` // 0-100
	Feedback  *string   `json:"feedback,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the aggregate root for one candidate's end-to-end interview.
// All mutation goes through the orchestrator; the helper methods below are
// the only places that touch the counters and UpdatedAt.
type Session struct {
	ID              uuid.UUID `json:"id"`
	CandidateName   string    `json:"candidate_name,omitempty"`
	ResumeContent   string    `json:"resume_content,omitempty"`
	JobRequirements string    `json:"job_requirements,omitempty"`
	Stage           Stage     `json:"stage"`

	Transcript  []Message        `json:"transcript"`
	ProjectQA   []QuestionAnswer `json:"project_qa"`
	TechnicalQA []QuestionAnswer `json:"technical_qa"`

	ProjectQuestionPool   []string `json:"project_question_pool"`
	TechnicalQuestionPool []string `json:"technical_question_pool"`

	ProjectQuestionsAsked  int `json:"project_questions_asked"`
	TargetProjectQuestions int `json:"target_project_questions"`
	CurrentFollowupCount   int `json:"current_followup_count"`

	FinalScore    *int    `json:"final_score,omitempty"`
	FinalFeedback *string `json:"final_feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session in the initial stage. Resume and job
// requirements are fixed at creation.
func NewSession(resumeContent, jobRequirements, candidateName string) *Session {
	now := time.Now()
	return &Session{
		ID:                     uuid.New(),
		CandidateName:          candidateName,
		ResumeContent:          resumeContent,
		JobRequirements:        jobRequirements,
		Stage:                  StageResumeSubmitted,
		TargetProjectQuestions: DefaultTargetProjectQuestions,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// Target project-question counts by resume length.
const (
	DefaultTargetProjectQuestions = 5

	shortResumeChars  = 500
	mediumResumeChars = 1500

	targetQuestionsShort  = 3
	targetQuestionsMedium = 5
	targetQuestionsLong   = 10
)

// TargetQuestionsForResume derives how many project questions to ask from the
// richness of the resume text.
func TargetQuestionsForResume(resumeContent string) int {
	switch {
	case len(resumeContent) < shortResumeChars:
		return targetQuestionsShort
	case len(resumeContent) < mediumResumeChars:
		return targetQuestionsMedium
	default:
		return targetQuestionsLong
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// AddMessage appends a transcript entry.
func (s *Session) AddMessage(role Role, content string) {
	s.Transcript = append(s.Transcript, Message{Role: role, Content: content})
	s.touch()
}

// AddProjectQA appends a project QA record. ProjectQuestionsAsked is
// incremented here and nowhere else, keeping it equal to len(ProjectQA).
func (s *Session) AddProjectQA(qa QuestionAnswer) {
	s.ProjectQA = append(s.ProjectQA, qa)
	s.ProjectQuestionsAsked++
	s.touch()
}

// AddTechnicalQA appends a technical QA record.
func (s *Session) AddTechnicalQA(qa QuestionAnswer) {
	s.TechnicalQA = append(s.TechnicalQA, qa)
	s.touch()
}

// LastInterviewerMessage returns the most recent interviewer transcript entry,
// which is the question the candidate is currently answering.
func (s *Session) LastInterviewerMessage() (string, bool) {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == RoleInterviewer {
			return s.Transcript[i].Content, true
		}
	}
	return "", false
}

// PopProjectQuestion removes and returns the front of the project pool.
func (s *Session) PopProjectQuestion() (string, bool) {
	if len(s.ProjectQuestionPool) == 0 {
		return "", false
	}
	q := s.ProjectQuestionPool[0]
	s.ProjectQuestionPool = s.ProjectQuestionPool[1:]
	s.touch()
	return q, true
}

// PopTechnicalQuestion removes and returns the front of the technical pool.
func (s *Session) PopTechnicalQuestion() (string, bool) {
	if len(s.TechnicalQuestionPool) == 0 {
		return "", false
	}
	q := s.TechnicalQuestionPool[0]
	s.TechnicalQuestionPool = s.TechnicalQuestionPool[1:]
	s.touch()
	return q, true
}

// AverageScore returns the arithmetic mean of all scored answers across both
// QA lists, or nil when no scores exist.
func (s *Session) AverageScore() *float64 {
	var sum, n int
	for _, qa := range s.ProjectQA {
		if qa.Score != nil {
			sum += *qa.Score
			n++
		}
	}
	for _, qa := range s.TechnicalQA {
		if qa.Score != nil {
			sum += *qa.Score
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

// SessionRepository is the durable store for sessions.
type SessionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Put(ctx context.Context, s *Session) error
	List(ctx context.Context) ([]*Session, error)
}
