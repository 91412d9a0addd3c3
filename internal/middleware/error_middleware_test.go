package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAPIError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"owner cannot leave", apperrors.ErrOwnerCannotLeave, http.StatusBadRequest, dto.ErrorCodeOwnerCannotLeave},
		{"mission closed", apperrors.ErrMissionClosed, http.StatusBadRequest, dto.ErrorCodeMissionClosed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"session not found", apperrors.ErrSessionNotFound, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not approved member", apperrors.ErrMembershipNotApproved, http.StatusForbidden, dto.ErrorCodeNotMember},
		{"guild not found", apperrors.ErrGuildNotFound, http.StatusNotFound, dto.ErrorCodeNotFound},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeEmailExists},
		{"already joined", apperrors.ErrAlreadyJoined, http.StatusConflict, dto.ErrorCodeAlreadyJoined},
		{"mission full", apperrors.ErrMissionFull, http.StatusConflict, dto.ErrorCodeMissionFull},
		{"external service", apperrors.ErrExternalService, http.StatusBadGateway, dto.ErrorCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := handleError(t, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, body.OK)
			require.NotNil(t, body.Error)
			assert.Equal(t, string(tt.wantCode), string(body.Error.Code))
		})
	}
}

func TestHandleAPIError_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("loading guild: %w", apperrors.ErrGuildNotFound)

	w, body := handleError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(dto.ErrorCodeNotFound), string(body.Error.Code))
}

func TestHandleAPIError_CustomErrorMessage(t *testing.T) {
	err := apperrors.NewBadRequestError("mission must end after it starts")

	w, body := handleError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "mission must end after it starts", body.Error.Message)
}

func TestHandleAPIError_UnknownErrorHidesDetails(t *testing.T) {
	SetErrorVerbosity(false)

	w, body := handleError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Internal server error", body.Error.Message)
}

func TestHandleAPIError_UnknownErrorExposedInDev(t *testing.T) {
	SetErrorVerbosity(true)
	defer SetErrorVerbosity(false)

	w, body := handleError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "pq: connection refused", body.Error.Message)
}
