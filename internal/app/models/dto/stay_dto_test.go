package dto

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindPing(t *testing.T, body string) (LocationPingRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/location", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req LocationPingRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestLocationPingRequest_AcceptsZeroCoordinates(t *testing.T) {
	// Latitude 0 / longitude 0 are valid positions, not missing fields
	req, err := bindPing(t, `{"latitude": 0, "longitude": 0, "category": "FD6"}`)
	require.NoError(t, err)
	require.NotNil(t, req.Latitude)
	require.NotNil(t, req.Longitude)
	assert.Equal(t, 0.0, *req.Latitude)
	assert.Equal(t, 0.0, *req.Longitude)
}

func TestLocationPingRequest_RejectsMissingCoordinates(t *testing.T) {
	_, err := bindPing(t, `{"category": "FD6"}`)
	assert.Error(t, err)

	_, err = bindPing(t, `{"latitude": 37.5}`)
	assert.Error(t, err)
}

func TestLocationPingRequest_RejectsOutOfRangeCoordinates(t *testing.T) {
	_, err := bindPing(t, `{"latitude": 91, "longitude": 0}`)
	assert.Error(t, err)

	_, err = bindPing(t, `{"latitude": 0, "longitude": 181}`)
	assert.Error(t, err)
}
