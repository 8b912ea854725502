package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vettalabs/vetta/internal/domain"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var (
		s          domain.Session
		stage      string
		transcript []byte
		projectQA  []byte
		techQA     []byte
		projPool   []byte
		techPool   []byte
	)

	err := r.pool.QueryRow(ctx,
		`SELECT id, candidate_name, resume_content, job_requirements, stage,
		        transcript, project_qa, technical_qa,
		        project_question_pool, technical_question_pool,
		        project_questions_asked, target_project_questions, current_followup_count,
		        final_score, final_feedback, created_at, updated_at
		 FROM interview_sessions WHERE id = $1`,
		id,
	).Scan(
		&s.ID, &s.CandidateName, &s.ResumeContent, &s.JobRequirements, &stage,
		&transcript, &projectQA, &techQA,
		&projPool, &techPool,
		&s.ProjectQuestionsAsked, &s.TargetProjectQuestions, &s.CurrentFollowupCount,
		&s.FinalScore, &s.FinalFeedback, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("sessionRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sessionRepo.Get: %w", err)
	}

	s.Stage, err = domain.ParseStage(stage)
	if err != nil {
		return nil, fmt.Errorf("sessionRepo.Get: %w", err)
	}

	if err := decodeColumns(&s, transcript, projectQA, techQA, projPool, techPool); err != nil {
		return nil, fmt.Errorf("sessionRepo.Get: %w", err)
	}

	return &s, nil
}

func decodeColumns(s *domain.Session, transcript, projectQA, techQA, projPool, techPool []byte) error {
	if err := json.Unmarshal(transcript, &s.Transcript); err != nil {
		return fmt.Errorf("decode transcript: %w", err)
	}
	if err := json.Unmarshal(projectQA, &s.ProjectQA); err != nil {
		return fmt.Errorf("decode project qa: %w", err)
	}
	if err := json.Unmarshal(techQA, &s.TechnicalQA); err != nil {
		return fmt.Errorf("decode technical qa: %w", err)
	}
	if err := json.Unmarshal(projPool, &s.ProjectQuestionPool); err != nil {
		return fmt.Errorf("decode project pool: %w", err)
	}
	if err := json.Unmarshal(techPool, &s.TechnicalQuestionPool); err != nil {
		return fmt.Errorf("decode technical pool: %w", err)
	}
	return nil
}

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	transcript, err := json.Marshal(orEmpty(s.Transcript))
	if err != nil {
		return fmt.Errorf("sessionRepo.Put: encode transcript: %w", err)
	}
	projectQA, err := json.Marshal(orEmpty(s.ProjectQA))
	if err != nil {
		return fmt.Errorf("sessionRepo.Put: encode project qa: %w", err)
	}
	techQA, err := json.Marshal(orEmpty(s.TechnicalQA))
	if err != nil {
		return fmt.Errorf("sessionRepo.Put: encode technical qa: %w", err)
	}
	projPool, err := json.Marshal(orEmpty(s.ProjectQuestionPool))
	if err != nil {
		return fmt.Errorf("sessionRepo.Put: encode project pool: %w", err)
	}
	techPool, err := json.Marshal(orEmpty(s.TechnicalQuestionPool))
	if err != nil {
		return fmt.Errorf("sessionRepo.Put: encode technical pool: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO interview_sessions (
			id, candidate_name, resume_content, job_requirements, stage,
			transcript, project_qa, technical_qa,
			project_question_pool, technical_question_pool,
			project_questions_asked, target_project_questions, current_followup_count,
			final_score, final_feedback, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			stage = EXCLUDED.stage,
			transcript = EXCLUDED.transcript,
			project_qa = EXCLUDED.project_qa,
			technical_qa = EXCLUDED.technical_qa,
			project_question_pool = EXCLUDED.project_question_pool,
			technical_question_pool = EXCLUDED.technical_question_pool,
			project_questions_asked = EXCLUDED.project_questions_asked,
			target_project_questions = EXCLUDED.target_project_questions,
			current_followup_count = EXCLUDED.current_followup_count,
			final_score = EXCLUDED.final_score,
			final_feedback = EXCLUDED.final_feedback,
			updated_at = EXCLUDED.updated_at`,
		s.ID, s.CandidateName, s.ResumeContent, s.JobRequirements, string(s.Stage),
		transcript, projectQA, techQA,
		projPool, techPool,
		s.ProjectQuestionsAsked, s.TargetProjectQuestions, s.CurrentFollowupCount,
		s.FinalScore, s.FinalFeedback, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sessionRepo.Put: %w", err)
	}

	return nil
}

func (r *SessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, candidate_name, resume_content, job_requirements, stage,
		        transcript, project_qa, technical_qa,
		        project_question_pool, technical_question_pool,
		        project_questions_asked, target_project_questions, current_followup_count,
		        final_score, final_feedback, created_at, updated_at
		 FROM interview_sessions ORDER BY created_at LIMIT 1000`)
	if err != nil {
		return nil, fmt.Errorf("sessionRepo.List: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var (
			s          domain.Session
			stage      string
			transcript []byte
			projectQA  []byte
			techQA     []byte
			projPool   []byte
			techPool   []byte
		)
		if err := rows.Scan(
			&s.ID, &s.CandidateName, &s.ResumeContent, &s.JobRequirements, &stage,
			&transcript, &projectQA, &techQA,
			&projPool, &techPool,
			&s.ProjectQuestionsAsked, &s.TargetProjectQuestions, &s.CurrentFollowupCount,
			&s.FinalScore, &s.FinalFeedback, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sessionRepo.List: scan: %w", err)
		}

		s.Stage, err = domain.ParseStage(stage)
		if err != nil {
			return nil, fmt.Errorf("sessionRepo.List: %w", err)
		}
		if err := decodeColumns(&s, transcript, projectQA, techQA, projPool, techPool); err != nil {
			return nil, fmt.Errorf("sessionRepo.List: %w", err)
		}

		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sessionRepo.List: rows: %w", err)
	}

	return sessions, nil
}

// orEmpty keeps jsonb columns as arrays rather than nulls.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
