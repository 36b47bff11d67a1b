package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
)

type templateRepository struct {
	BaseRepository
}

func NewTemplateRepository(db *sqlx.DB) repository.TemplateRepository {
	return &templateRepository{NewBaseRepository(db)}
}

func (r *templateRepository) Create(ctx context.Context, tmpl *model.Template) error {
	query := `
		INSERT INTO templates (
			id, owner_id, name, channel, subject, body, category,
			variables, usage_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	tmpl.CreatedAt = time.Now()
	tmpl.UpdatedAt = tmpl.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		tmpl.ID,
		tmpl.OwnerID,
		tmpl.Name,
		tmpl.Channel,
		tmpl.Subject,
		tmpl.Body,
		tmpl.Category,
		tmpl.Variables,
		tmpl.UsageCount,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error) {
	query := `SELECT * FROM templates WHERE id = $1 AND owner_id = $2`
	var tmpl model.Template
	if err := r.db.GetContext(ctx, &tmpl, query, id, ownerID); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *templateRepository) Update(ctx context.Context, tmpl *model.Template) error {
	query := `
		UPDATE templates
		SET name = $1, channel = $2, subject = $3, body = $4, category = $5,
			variables = $6, usage_count = $7, updated_at = $8
		WHERE id = $9 AND owner_id = $10
	`
	tmpl.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		tmpl.Name,
		tmpl.Channel,
		tmpl.Subject,
		tmpl.Body,
		tmpl.Category,
		tmpl.Variables,
		tmpl.UsageCount,
		tmpl.UpdatedAt,
		tmpl.ID,
		tmpl.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM templates WHERE id = $1 AND owner_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, ownerID)
	return err
}

func (r *templateRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*model.Template, error) {
	query := `SELECT * FROM templates WHERE owner_id = $1 ORDER BY created_at ASC`
	templates := []*model.Template{}
	err := r.db.SelectContext(ctx, &templates, query, ownerID)
	return templates, err
}
