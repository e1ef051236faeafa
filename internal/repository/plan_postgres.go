package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solacetech/solace-backend/internal/entity"
)

// PlanRepository defines the interface for the plan archive.
type PlanRepository interface {
	Create(ctx context.Context, plan entity.SavedPlan) (*entity.SavedPlan, error)
	Get(ctx context.Context, id string) (*entity.SavedPlan, error)
	List(ctx context.Context, skip, limit int) ([]*entity.SavedPlan, error)
	Delete(ctx context.Context, id string) error
}

var _ PlanRepository = &PlanPostgres{}

// PlanPostgres implements PlanRepository using PostgreSQL. The plan document
// is stored as jsonb, so the archive survives schema drift in the LLM output.
type PlanPostgres struct {
	db *pgxpool.Pool
}

func NewPlanPostgres(db *pgxpool.Pool) *PlanPostgres {
	return &PlanPostgres{db: db}
}

func (r *PlanPostgres) Create(ctx context.Context, plan entity.SavedPlan) (*entity.SavedPlan, error) {
	planID, err := uuid.Parse(plan.ID)
	if err != nil {
		return nil, fmt.Errorf("parse plan ID: %w", err)
	}

	document, err := json.Marshal(plan.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal plan document: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO plans (id, session_id, title, cost_bucket, document)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, title, cost_bucket, document, created_at`,
		pgtype.UUID{Bytes: planID, Valid: true},
		plan.SessionID,
		plan.Title,
		string(plan.CostBucket),
		document,
	)

	return scanPlan(row)
}

func (r *PlanPostgres) Get(ctx context.Context, id string) (*entity.SavedPlan, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse plan ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, session_id, title, cost_bucket, document, created_at
		FROM plans
		WHERE id = $1`,
		pgtype.UUID{Bytes: planID, Valid: true},
	)

	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrPlanNotFound
		}
		return nil, err
	}

	return plan, nil
}

func (r *PlanPostgres) List(ctx context.Context, skip, limit int) ([]*entity.SavedPlan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, title, cost_bucket, document, created_at
		FROM plans
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := []*entity.SavedPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return plans, nil
}

func (r *PlanPostgres) Delete(ctx context.Context, id string) error {
	planID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parse plan ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`,
		pgtype.UUID{Bytes: planID, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrPlanNotFound
	}

	return nil
}

func scanPlan(row pgx.Row) (*entity.SavedPlan, error) {
	var (
		id         pgtype.UUID
		sessionID  string
		title      string
		costBucket string
		document   []byte
		createdAt  pgtype.Timestamptz
	)

	if err := row.Scan(&id, &sessionID, &title, &costBucket, &document, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	plan := &entity.SavedPlan{
		ID:         uuid.UUID(id.Bytes).String(),
		SessionID:  sessionID,
		Title:      title,
		CostBucket: entity.CostBucket(costBucket),
		CreatedAt:  createdAt.Time,
	}

	if err := json.Unmarshal(document, &plan.Document); err != nil {
		return nil, fmt.Errorf("unmarshal plan document: %w", err)
	}
	plan.Document.Normalize()

	return plan, nil
}
