package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadmessenger/outreach-api/internal/model"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
)

func TestImportCSV(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := newTestService(repo)
	ownerID := uuid.New()

	data := []byte(`email,first_name,last_name,company,status,tags
jane@example.com,Jane,Doe,Acme,contacted,"warm,referral"
,Missing,Email,Acme,,
bob@example.com,Bob,Smith,,unknown_status,[]
,Another,Skipped,,,
carol@example.com,Carol,Jones,Globex,,"[""inbound""]"
`)

	imported, err := svc.ImportCSV(context.Background(), ownerID, "contacts.csv", data)
	require.NoError(t, err)
	require.Len(t, imported, 3, "rows without an email are skipped")

	assert.Equal(t, "jane@example.com", imported[0].Email)
	assert.Equal(t, model.ContactStatusContacted, imported[0].Status)
	assert.Equal(t, []string{"warm", "referral"}, []string(imported[0].Tags))

	assert.Equal(t, model.ContactStatusProspect, imported[1].Status, "unknown status falls back to prospect")
	assert.Empty(t, imported[1].Tags)

	assert.Equal(t, []string{"inbound"}, []string(imported[2].Tags))

	count, err := repo.CountByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestImportCSVRejectsNonCSV(t *testing.T) {
	svc := newTestService(&fakeContactRepo{})

	_, err := svc.ImportCSV(context.Background(), uuid.New(), "contacts.xlsx", []byte("email\njane@example.com\n"))
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestImportCSVParseFailure(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := newTestService(repo)

	// Unterminated quote mid-file fails the whole import.
	data := []byte("email,first_name\njane@example.com,Jane\nbob@example.com,\"Bob\n")
	_, err := svc.ImportCSV(context.Background(), uuid.New(), "contacts.csv", data)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrImport, appErr.Code)
	assert.Empty(t, repo.contacts, "no rows persisted on parse failure")
}

func TestImportCSVInsertFailure(t *testing.T) {
	repo := &fakeContactRepo{failNext: errors.New("connection reset")}
	svc := newTestService(repo)

	data := []byte("email\njane@example.com\n")
	_, err := svc.ImportCSV(context.Background(), uuid.New(), "contacts.csv", data)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrImport, appErr.Code)
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc := newTestService(&fakeContactRepo{})

	imported, err := svc.ImportCSV(context.Background(), uuid.New(), "contacts.csv", []byte(""))
	require.NoError(t, err)
	assert.Empty(t, imported)

	imported, err = svc.ImportCSV(context.Background(), uuid.New(), "contacts.csv", []byte("email,first_name\n"))
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestParseTags(t *testing.T) {
	assert.Empty(t, parseTags(""))
	assert.Empty(t, parseTags("[]"))
	assert.Equal(t, []string{"a", "b"}, parseTags(`["a","b"]`))
	assert.Equal(t, []string{"a", "b"}, parseTags("a, b"))
}
