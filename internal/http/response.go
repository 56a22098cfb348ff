package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "WriteJsonResponse").Logger()

	w.Header().Add(KEY_HEADER_CONTENT_TYPE, VALUE_HEADER_APPLICATION_JSON)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"].(int); ok {
		w.WriteHeader(v)
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// WriteErrorResponse answers with the status code matching err and, for
// validation failures, the offending fields.
func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error) {
	WriteResultResponse(c, w, err, "", nil)
}

// WriteResultResponse answers with data either way, so state that survived a
// failure still reaches the client.
func WriteResultResponse(
	c context.Context,
	w http.ResponseWriter,
	err error,
	message string,
	data map[string]interface{},
) {
	if err == nil {
		WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    message,
			"data":       data,
		})
		return
	}
	body := map[string]interface{}{
		"status":     "failed",
		"statusCode": StatusCode(err),
		"message":    err.Error(),
	}
	if fields := inErrors.ValidationFields(err); fields != nil {
		if data == nil {
			data = map[string]interface{}{}
		}
		data["fields"] = fields
	}
	if data != nil {
		body["data"] = data
	}
	WriteJsonResponse(c, w, map[string]string{}, body)
}

func StatusCode(err error) int {
	switch {
	case inErrors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrEmptyAuth),
		errors.Is(err, inErrors.ErrTokenInvalid),
		errors.Is(err, inErrors.ErrEmptySubject),
		errors.Is(err, inErrors.ErrUserNotFound),
		errors.Is(err, inErrors.ErrPasswordMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrEmptyCart),
		errors.Is(err, inErrors.ErrWrongStep),
		errors.Is(err, inErrors.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrInvalidCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, inErrors.ErrNotSent):
		return http.StatusGone
	case errors.Is(err, inErrors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, inErrors.ErrDelivery), errors.Is(err, inErrors.ErrPersistence):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
