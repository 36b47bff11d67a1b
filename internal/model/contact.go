package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ContactStatus tracks where a contact sits in the outreach funnel.
type ContactStatus string

const (
	ContactStatusProspect    ContactStatus = "prospect"
	ContactStatusContacted   ContactStatus = "contacted"
	ContactStatusResponded   ContactStatus = "responded"
	ContactStatusInterviewed ContactStatus = "interviewed"
	ContactStatusHired       ContactStatus = "hired"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusProspect, ContactStatusContacted, ContactStatusResponded,
		ContactStatusInterviewed, ContactStatusHired:
		return true
	}
	return false
}

type Contact struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	OwnerID   uuid.UUID      `db:"owner_id" json:"owner_id"`
	Email     string         `db:"email" json:"email"`
	FirstName string         `db:"first_name" json:"first_name"`
	LastName  string         `db:"last_name" json:"last_name"`
	Company   string         `db:"company" json:"company"`
	Position  string         `db:"position" json:"position"`
	Phone     string         `db:"phone" json:"phone"`
	Linkedin  string         `db:"linkedin" json:"linkedin"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	Status    ContactStatus  `db:"status" json:"status"`
	Source    string         `db:"source" json:"source"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateContactRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	Phone     string   `json:"phone"`
	Linkedin  string   `json:"linkedin"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status" binding:"omitempty,contact_status"`
	Source    string   `json:"source"`
}

// UpdateContactRequest is a partial update; nil fields are left untouched.
type UpdateContactRequest struct {
	Email     *string   `json:"email" binding:"omitempty,email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Company   *string   `json:"company"`
	Position  *string   `json:"position"`
	Phone     *string   `json:"phone"`
	Linkedin  *string   `json:"linkedin"`
	Tags      *[]string `json:"tags"`
	Status    *string   `json:"status"`
	Source    *string   `json:"source"`
}

// ContactFilters narrows a contact listing.
type ContactFilters struct {
	Tag        string `form:"tag"`
	SearchTerm string `form:"q"`
	Pagination
}

// ContactList is the paginated listing payload.
type ContactList struct {
	Contacts []*Contact `json:"contacts"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PerPage  int        `json:"per_page"`
}
