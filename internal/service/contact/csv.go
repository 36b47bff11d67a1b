package contact

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/model"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
)

// ImportCSV parses header-keyed CSV rows into contacts and inserts them as
// one batch. Rows without an email are silently skipped; a parse or insert
// failure anywhere rolls back the entire batch.
func (s *Service) ImportCSV(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) ([]*model.Contact, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, apperrors.Validation("file must be a CSV")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []*model.Contact{}, nil
	}
	if err != nil {
		return nil, apperrors.Import("error importing contacts", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	contacts := []*model.Contact{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Import("error importing contacts", err)
		}

		email := field(record, "email")
		if email == "" {
			continue
		}

		status := model.ContactStatus(field(record, "status"))
		if !status.IsValid() {
			status = model.ContactStatusProspect
		}

		contacts = append(contacts, &model.Contact{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Email:     email,
			FirstName: field(record, "first_name"),
			LastName:  field(record, "last_name"),
			Company:   field(record, "company"),
			Position:  field(record, "position"),
			Phone:     field(record, "phone"),
			Linkedin:  field(record, "linkedin"),
			Tags:      parseTags(field(record, "tags")),
			Status:    status,
			Source:    field(record, "source"),
		})
	}

	if len(contacts) == 0 {
		return contacts, nil
	}

	if err := s.repo.CreateBatch(ctx, contacts); err != nil {
		if s.metrics != nil {
			s.metrics.ImportFailures.Inc()
		}
		return nil, apperrors.Import("error importing contacts", err)
	}
	if s.metrics != nil {
		s.metrics.ContactsImported.Add(float64(len(contacts)))
	}
	return contacts, nil
}

// parseTags accepts a JSON-array cell ("[\"a\",\"b\"]", default "[]") and
// falls back to comma-separated values.
func parseTags(cell string) []string {
	if cell == "" || cell == "[]" {
		return []string{}
	}

	if strings.HasPrefix(cell, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(cell), &tags); err == nil {
			return tags
		}
	}

	parts := strings.Split(cell, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
