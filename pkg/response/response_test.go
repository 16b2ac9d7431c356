package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := testContext()
	c.Set("request_id", "req-123")

	Success(c, http.StatusCreated, map[string]any{"id": 7}, "created", nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, "req-123", body["request_id"])
	assert.Equal(t, float64(http.StatusCreated), body["status"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["id"])
}

func TestErrorEnvelope(t *testing.T) {
	c, w := testContext()

	Error[any](c, http.StatusNotFound, "Game not found with id: 42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Game not found with id: 42", body["message"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestZeroStatusDefaults(t *testing.T) {
	c, w := testContext()
	Success[any](c, 0, nil, "ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
