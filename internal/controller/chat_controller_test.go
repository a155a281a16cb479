package controller

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"insightsmith-be/internal/constant"
	"insightsmith-be/internal/dto"
	"insightsmith-be/internal/pkg/serverutils"
	"insightsmith-be/internal/repository/memory"
	"insightsmith-be/internal/service"
	"insightsmith-be/pkg/composer"
	"insightsmith-be/pkg/detector"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := memory.NewSessionRepository()
	cmp := composer.NewComposer(nil, nil, constant.SearchTriggers, 5, log.New(io.Discard, "", 0))
	det := detector.New(constant.ModeCycle, constant.ModeDetectionPhrases, constant.HelpPhrases, constant.ModeSwitchPhrases, constant.ModeGuide)
	chatService := service.NewChatService(repo, nil, cmp, det, nil, time.Hour, nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(chatService).RegisterRoutes(api)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*dto.ChatResponse, int) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var parsed dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return &parsed, res.StatusCode
}

func TestChatEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, status := postJSON(t, app, "/api/chat/v1", `{"message":"転職について教えて"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.SessionId)
	require.NotNil(t, resp.Data)
	assert.Equal(t, constant.ModeGuide, resp.Data.Mode)
}

func TestChatEndpoint_RejectsEmptyPayload(t *testing.T) {
	app := newTestApp(t)

	resp, status := postJSON(t, app, "/api/chat/v1", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Message or selectedAction is required", resp.Error)
}

func TestChatEndpoint_RejectsUnknownForceMode(t *testing.T) {
	app := newTestApp(t)

	_, status := postJSON(t, app, "/api/chat/v1", `{"message":"hi","forceMode":"drill-sergeant"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestChatEndpoint_QuickAction(t *testing.T) {
	app := newTestApp(t)

	first, _ := postJSON(t, app, "/api/chat/v1", `{"message":"起業の相談です"}`)
	require.True(t, first.Success)

	resp, status := postJSON(t, app, "/api/chat/v1",
		`{"sessionId":"`+first.SessionId+`","selectedAction":"mode_change"}`)
	assert.Equal(t, fiber.StatusOK, status)
	require.True(t, resp.Success)
	assert.Equal(t, first.SessionId, resp.SessionId)
	assert.Equal(t, constant.ModeSocrates, resp.Data.Mode)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/api/chat/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	app := newTestApp(t)

	// Create
	req := httptest.NewRequest("POST", "/api/chat/v1/session", strings.NewReader(`{"initialMode":"hard"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var created struct {
		Success bool                      `json:"success"`
		Data    dto.CreateSessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	require.True(t, created.Success)

	// Show
	res, err = app.Test(httptest.NewRequest("GET", "/api/chat/v1/session/"+created.Data.Id.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var shown struct {
		Success bool                   `json:"success"`
		Data    dto.GetSessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&shown))
	assert.Equal(t, "hard", shown.Data.CurrentMode)

	// Delete
	res, err = app.Test(httptest.NewRequest("DELETE", "/api/chat/v1/session/"+created.Data.Id.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	// Gone
	res, err = app.Test(httptest.NewRequest("GET", "/api/chat/v1/session/"+created.Data.Id.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestSessionShow_UnknownIdReturnsErrorEnvelope(t *testing.T) {
	app := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/api/chat/v1/session/"+uuid.New().String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)

	var envelope serverutils.ApiErrorResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, fiber.StatusNotFound, envelope.Code)
	assert.Equal(t, "session not found", envelope.Message)
}
