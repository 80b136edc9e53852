package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
	"github.com/fortyozsucka/college-football-picks/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	apiVersion  = "2.0"
	errorDomain = "college-football-picks"

	internalErrorMessage = "internal server error"
)

// envelope follows the Google JSON style guide: exactly one of Data or Error.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
	// Processed is how many items a failed batch run committed before stopping.
	Processed *int `json:"processed,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is how one family of errors is presented to clients.
type errorClass struct {
	match      []error
	HTTPStatus int
	Reason     string
	Status     string
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorClasses is checked in order; the first class with a matching sentinel
// wins.
var errorClasses = []errorClass{
	{match: []error{usecase.ErrInvalidInput}, HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	{match: []error{usecase.ErrNotFound}, HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	{match: []error{usecase.ErrUnauthorized}, HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	{match: []error{usecase.ErrScoringInProgress}, HTTPStatus: http.StatusConflict, Reason: "scoringInProgress", Status: "ABORTED"},
	{match: []error{usecase.ErrAlreadyArchived}, HTTPStatus: http.StatusConflict, Reason: "alreadyArchived", Status: "ALREADY_EXISTS"},
	{match: []error{usecase.ErrDependencyUnavailable}, HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	{
		match: []error{
			game.ErrUnknownGameType,
			scoring.ErrMissingTier,
			scoring.ErrConflictingOutcome,
			scoring.ErrUnknownPickedTeam,
		},
		HTTPStatus: http.StatusUnprocessableEntity,
		Reason:     "invalidGameData",
		Status:     "FAILED_PRECONDITION",
	},
	{match: []error{context.Canceled, context.DeadlineExceeded}, HTTPStatus: http.StatusGatewayTimeout, Reason: "deadlineExceeded", Status: "DEADLINE_EXCEEDED"},
}

func classifyError(err error) errorClass {
	for _, class := range errorClasses {
		for _, target := range class.match {
			if errors.Is(err, target) {
				return class
			}
		}
	}
	return internalClass
}

// writeJSON encodes into a pooled buffer first so an encoding failure still
// turns into a clean 500 instead of a half-written body.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload envelope) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		_, _ = buf.WriteString(`{"apiVersion":"` + apiVersion + `","error":{"code":500,"message":"` + internalErrorMessage + `","status":"INTERNAL"}}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError renders err with the status of its class. Unclassified errors
// are reported as a bare internal error so storage details never leak.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classifyError(err)
	message := err.Error()
	if class.HTTPStatus == http.StatusInternalServerError {
		message = internalErrorMessage
	}

	body := &errorBody{
		Code:    class.HTTPStatus,
		Message: message,
		Status:  class.Status,
		Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: message}},
	}
	if batchErr, ok := usecase.AsBatchError(err); ok {
		processed := batchErr.Processed
		body.Processed = &processed
	}

	writeJSON(ctx, w, class.HTTPStatus, envelope{APIVersion: apiVersion, Error: body})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalErrorMessage))
}
