package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-stats/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "match-stats"

	internalErrorMessage = "internal server error"
	encodeFailureBody    = `{"apiVersion":"2.0","error":{"code":500,"message":"encode response failed","status":"INTERNAL"}}`
)

// Success bodies always carry the data key so an absent result encodes as "data": null.
type successEnvelope struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
}

type errorEnvelope struct {
	APIVersion string    `json:"apiVersion"`
	Error      errorBody `json:"error"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is how one usecase sentinel surfaces over HTTP.
type errorClass struct {
	target     error
	HTTPStatus int
	Status     string
	Reason     string
}

// errorClasses is checked in order; the first sentinel found in the chain wins.
var errorClasses = []errorClass{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"},
	{usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "notFound"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized"},
	{usecase.ErrUpstreamIngestion, http.StatusBadGateway, "UNAVAILABLE", "upstreamIngestionFailed"},
	{usecase.ErrStoreUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", "storeUnavailable"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable"},
}

var internalErrorClass = errorClass{HTTPStatus: http.StatusInternalServerError, Status: "INTERNAL", Reason: "internalError"}

func mapError(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.target) {
			return class
		}
	}
	return internalErrorClass
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailureBody))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError renders err in the Google JSON error shape. Messages of unclassified errors
// can carry driver or network details and are replaced by a fixed text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := mapError(err)
	message := internalErrorMessage
	if class.HTTPStatus != http.StatusInternalServerError {
		message = err.Error()
	}
	recordError(ctx, err, class)

	writeJSON(w, class.HTTPStatus, errorEnvelope{
		APIVersion: googleAPIVersion,
		Error: errorBody{
			Code:    class.HTTPStatus,
			Message: message,
			Status:  class.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: message}},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("recovered panic"))
}
