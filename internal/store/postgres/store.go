package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vettalabs/vetta/internal/domain"
)

type Store struct {
	pool     *pgxpool.Pool
	sessions *SessionRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: %w", err)
	}

	return &Store{
		pool:     pool,
		sessions: NewSessionRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Sessions() domain.SessionRepository { return s.sessions }

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS interview_sessions (
			id                       uuid PRIMARY KEY,
			candidate_name           text NOT NULL DEFAULT '',
			resume_content           text NOT NULL DEFAULT '',
			job_requirements         text NOT NULL DEFAULT '',
			stage                    text NOT NULL,
			transcript               jsonb NOT NULL DEFAULT '[]',
			project_qa               jsonb NOT NULL DEFAULT '[]',
			technical_qa             jsonb NOT NULL DEFAULT '[]',
			project_question_pool    jsonb NOT NULL DEFAULT '[]',
			technical_question_pool  jsonb NOT NULL DEFAULT '[]',
			project_questions_asked  integer NOT NULL DEFAULT 0,
			target_project_questions integer NOT NULL DEFAULT 0,
			current_followup_count   integer NOT NULL DEFAULT 0,
			final_score              integer,
			final_feedback           text,
			created_at               timestamptz NOT NULL,
			updated_at               timestamptz NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}
