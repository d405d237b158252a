package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notelite-be/internal/dto"
	"notelite-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNoteService tracks whether the store layer was reached.
type recordingNoteService struct {
	calls  int
	userId uuid.UUID
}

func (s *recordingNoteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	s.calls++
	s.userId = userId
	return &dto.CreateNoteResponse{Id: uuid.New()}, nil
}

func (s *recordingNoteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	s.calls++
	s.userId = userId
	return []*dto.NoteResponse{}, nil
}

func (s *recordingNoteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	s.calls++
	s.userId = userId
	return &dto.NoteResponse{Id: id}, nil
}

func (s *recordingNoteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	s.calls++
	s.userId = userId
	return &dto.UpdateNoteResponse{Id: req.Id}, nil
}

func (s *recordingNoteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	s.calls++
	s.userId = userId
	return nil
}

const noteTestSecret = "note-test-secret"

func newNoteApp(svc *recordingNoteService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewNoteController(svc).RegisterRoutes(app.Group("/api"), serverutils.JwtProtected(noteTestSecret))
	return app
}

func bearerFor(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(noteTestSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestNoteRoutesRejectUnauthenticatedBeforeStoreAccess(t *testing.T) {
	svc := &recordingNoteService{}
	app := newNoteApp(svc)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/note/v1"},
		{http.MethodPost, "/api/note/v1"},
		{http.MethodGet, "/api/note/v1/" + uuid.NewString()},
		{http.MethodPut, "/api/note/v1/" + uuid.NewString()},
		{http.MethodDelete, "/api/note/v1/" + uuid.NewString()},
	}

	for _, r := range routes {
		req := httptest.NewRequest(r.method, r.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}

	assert.Zero(t, svc.calls, "no store call may be issued without a session")
}

func TestNoteCreateUsesCallerIdentity(t *testing.T) {
	svc := &recordingNoteService{}
	app := newNoteApp(svc)
	userId := uuid.New()

	body := `{"title":"T","content":"C"}`
	req := httptest.NewRequest(http.MethodPost, "/api/note/v1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, userId))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, userId, svc.userId, "user_id must come from the token, not the body")
}

func TestNoteCreateValidatesPresence(t *testing.T) {
	svc := &recordingNoteService{}
	app := newNoteApp(svc)

	body := `{"title":"","content":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/note/v1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.calls)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, false, envelope["success"])
}
