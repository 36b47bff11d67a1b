package contact

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadmessenger/outreach-api/internal/handler"
	"github.com/leadmessenger/outreach-api/internal/model"
	contactService "github.com/leadmessenger/outreach-api/internal/service/contact"
)

type memContactRepo struct {
	contacts []*model.Contact
}

func (r *memContactRepo) Create(_ context.Context, c *model.Contact) error {
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *memContactRepo) CreateBatch(_ context.Context, cs []*model.Contact) error {
	r.contacts = append(r.contacts, cs...)
	return nil
}

func (r *memContactRepo) Get(_ context.Context, ownerID, id uuid.UUID) (*model.Contact, error) {
	for _, c := range r.contacts {
		if c.ID == id && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memContactRepo) Update(_ context.Context, c *model.Contact) error { return nil }

func (r *memContactRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, c := range r.contacts {
		if c.ID == id && c.OwnerID == ownerID {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memContactRepo) List(_ context.Context, ownerID uuid.UUID, f *model.ContactFilters) ([]*model.Contact, int, error) {
	var matched []*model.Contact
	for _, c := range r.contacts {
		if c.OwnerID == ownerID {
			matched = append(matched, c)
		}
	}
	total := len(matched)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memContactRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	count := 0
	for _, c := range r.contacts {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func setupRouter(repo *memContactRepo, ownerID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(handler.ContextOwnerID, ownerID)
		c.Next()
	})

	svc := contactService.NewService(repo, 10000, nil)
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.Response {
	t.Helper()
	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateAndGetContact(t *testing.T) {
	ownerID := uuid.New()
	router := setupRouter(&memContactRepo{}, ownerID)

	body := `{"email":"jane@example.com","first_name":"Jane","last_name":"Doe"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	id := data["id"].(string)
	assert.Equal(t, "prospect", data["status"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/contacts/"+id, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateContactRejectsBadPayload(t *testing.T) {
	router := setupRouter(&memContactRepo{}, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", bytes.NewBufferString(`{"first_name":"Jane"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetContactMalformedID(t *testing.T) {
	router := setupRouter(&memContactRepo{}, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetContactUnknownID(t *testing.T) {
	router := setupRouter(&memContactRepo{}, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "contact not found", resp.Message)
}

func TestListContactsQueryPagination(t *testing.T) {
	ownerID := uuid.New()
	repo := &memContactRepo{}
	for i := 0; i < 5; i++ {
		repo.contacts = append(repo.contacts, &model.Contact{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Email:   fmt.Sprintf("c%d@example.com", i),
		})
	}
	router := setupRouter(repo, ownerID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts?page=2&per_page=2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(2), data["page"])
	assert.Len(t, data["contacts"].([]interface{}), 2)
}

func TestImportContactsMultipart(t *testing.T) {
	ownerID := uuid.New()
	repo := &memContactRepo{}
	router := setupRouter(repo, ownerID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "contacts.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("email,first_name\njane@example.com,Jane\n,NoEmail\nbob@example.com,Bob\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.Len(t, resp.Data.([]interface{}), 2)
	assert.Len(t, repo.contacts, 2)
}

func TestImportContactsMissingFile(t *testing.T) {
	router := setupRouter(&memContactRepo{}, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts/import", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteContact(t *testing.T) {
	ownerID := uuid.New()
	repo := &memContactRepo{}
	contact := &model.Contact{ID: uuid.New(), OwnerID: ownerID, Email: "jane@example.com"}
	repo.contacts = append(repo.contacts, contact)
	router := setupRouter(repo, ownerID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/"+contact.ID.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.contacts)
}
