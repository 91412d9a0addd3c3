package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
	"github.com/seojin/tastemap/internal/pkg/logger"
)

// exposeErrors controls whether raw error messages reach the client.
// Enabled in development, disabled in release builds where internals must
// not leak.
var exposeErrors bool

// SetErrorVerbosity configures whether HandleAPIError attaches raw error
// text to 500 responses
func SetErrorVerbosity(dev bool) {
	exposeErrors = dev
}

type errorMapping struct {
	status int
	code   dto.ErrorCode
}

var errorMappings = []struct {
	err     error
	mapping errorMapping
}{
	// 400
	{apperrors.ErrBadRequest, errorMapping{http.StatusBadRequest, dto.ErrorCodeBadRequest}},
	{apperrors.ErrValidationFailed, errorMapping{http.StatusBadRequest, dto.ErrorCodeValidationFailed}},
	{apperrors.ErrOwnerCannotLeave, errorMapping{http.StatusBadRequest, dto.ErrorCodeOwnerCannotLeave}},
	{apperrors.ErrMissionClosed, errorMapping{http.StatusBadRequest, dto.ErrorCodeMissionClosed}},

	// 401
	{apperrors.ErrInvalidCredentials, errorMapping{http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials}},
	{apperrors.ErrUnauthorized, errorMapping{http.StatusUnauthorized, dto.ErrorCodeUnauthorized}},
	{apperrors.ErrSessionNotFound, errorMapping{http.StatusUnauthorized, dto.ErrorCodeUnauthorized}},

	// 403
	{apperrors.ErrPermissionDenied, errorMapping{http.StatusForbidden, dto.ErrorCodeForbidden}},
	{apperrors.ErrNotGuildMember, errorMapping{http.StatusForbidden, dto.ErrorCodeNotMember}},
	{apperrors.ErrMembershipNotApproved, errorMapping{http.StatusForbidden, dto.ErrorCodeNotMember}},

	// 404
	{apperrors.ErrResourceNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrUserNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrGuildNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrMembershipNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrRecordNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrCommentNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrMissionNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrTasteRecordNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrStayNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},
	{apperrors.ErrNotificationNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeNotFound}},

	// 409
	{apperrors.ErrEmailAlreadyExists, errorMapping{http.StatusConflict, dto.ErrorCodeEmailExists}},
	{apperrors.ErrAlreadyMember, errorMapping{http.StatusConflict, dto.ErrorCodeAlreadyMember}},
	{apperrors.ErrAlreadyJoined, errorMapping{http.StatusConflict, dto.ErrorCodeAlreadyJoined}},
	{apperrors.ErrMissionFull, errorMapping{http.StatusConflict, dto.ErrorCodeMissionFull}},
	{apperrors.ErrResourceAlreadyExists, errorMapping{http.StatusConflict, dto.ErrorCodeConflict}},
	{apperrors.ErrConflict, errorMapping{http.StatusConflict, dto.ErrorCodeConflict}},

	// 502
	{apperrors.ErrExternalService, errorMapping{http.StatusBadGateway, dto.ErrorCodeExternalService}},
}

// HandleAPIError maps a service error onto the response envelope. Known
// sentinel errors get their status and stable code; anything else is a 500
// whose raw message is only exposed in development.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			errorDetail := dto.NewErrorDetail(m.mapping.code, userFacingMessage(err, m.err))
			c.JSON(m.mapping.status, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled API error")

	message := "Internal server error"
	if exposeErrors {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, message)))
}

// userFacingMessage prefers a wrapped CustomError's message over the bare
// sentinel text
func userFacingMessage(err, sentinel error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return sentinel.Error()
}
