package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
)

type contactRepository struct {
	BaseRepository
}

func NewContactRepository(db *sqlx.DB) repository.ContactRepository {
	return &contactRepository{NewBaseRepository(db)}
}

const insertContact = `
	INSERT INTO contacts (
		id, owner_id, email, first_name, last_name, company, position,
		phone, linkedin, tags, status, source, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt

	_, err := r.db.ExecContext(ctx, insertContact,
		contact.ID,
		contact.OwnerID,
		contact.Email,
		contact.FirstName,
		contact.LastName,
		contact.Company,
		contact.Position,
		contact.Phone,
		contact.Linkedin,
		contact.Tags,
		contact.Status,
		contact.Source,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// CreateBatch inserts all contacts in one transaction; any failure rolls
// back the whole batch.
func (r *contactRepository) CreateBatch(ctx context.Context, contacts []*model.Contact) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		for _, contact := range contacts {
			contact.CreatedAt = now
			contact.UpdatedAt = now
			if _, err := tx.ExecContext(ctx, insertContact,
				contact.ID,
				contact.OwnerID,
				contact.Email,
				contact.FirstName,
				contact.LastName,
				contact.Company,
				contact.Position,
				contact.Phone,
				contact.Linkedin,
				contact.Tags,
				contact.Status,
				contact.Source,
				contact.CreatedAt,
				contact.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert contact %s: %w", contact.Email, err)
			}
		}
		return nil
	})
}

func (r *contactRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Contact, error) {
	query := `SELECT * FROM contacts WHERE id = $1 AND owner_id = $2`
	var contact model.Contact
	if err := r.db.GetContext(ctx, &contact, query, id, ownerID); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	query := `
		UPDATE contacts
		SET email = $1, first_name = $2, last_name = $3, company = $4,
			position = $5, phone = $6, linkedin = $7, tags = $8,
			status = $9, source = $10, updated_at = $11
		WHERE id = $12 AND owner_id = $13
	`
	contact.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		contact.Email,
		contact.FirstName,
		contact.LastName,
		contact.Company,
		contact.Position,
		contact.Phone,
		contact.Linkedin,
		contact.Tags,
		contact.Status,
		contact.Source,
		contact.UpdatedAt,
		contact.ID,
		contact.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

// Delete nullifies task references in the same transaction. Messages
// referencing the contact cascade via the schema.
func (r *contactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET contact_id = NULL WHERE contact_id = $1 AND owner_id = $2`,
			id, ownerID,
		); err != nil {
			return fmt.Errorf("failed to detach tasks: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM contacts WHERE id = $1 AND owner_id = $2`,
			id, ownerID,
		); err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		return nil
	})
}

func (r *contactRepository) List(ctx context.Context, ownerID uuid.UUID, f *model.ContactFilters) ([]*model.Contact, int, error) {
	where := `WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if f.Tag != "" {
		args = append(args, pq.Array([]string{f.Tag}))
		where += fmt.Sprintf(` AND tags @> $%d`, len(args))
	}
	if f.SearchTerm != "" {
		args = append(args, "%"+f.SearchTerm+"%")
		n := len(args)
		where += fmt.Sprintf(
			` AND (first_name ILIKE $%d OR last_name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)`,
			n, n, n, n,
		)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	// Batch imports share a created_at timestamp; the id tiebreaker keeps
	// page boundaries stable across requests.
	args = append(args, f.PerPage, f.Offset())
	query := fmt.Sprintf(
		`SELECT * FROM contacts %s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	contacts := []*model.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, total, nil
}

func (r *contactRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contacts WHERE owner_id = $1`, ownerID)
	return count, err
}
