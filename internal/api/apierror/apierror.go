// Package apierror writes the JSON error envelope used by every API
// endpoint: {"error": ...} with optional "message" and "code" fields
// carrying backend diagnostics for operator debugging.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const contentType = "application/json"

type Response struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Write responds with {"error": errMsg} and logs the underlying error at a
// level matching the status class.
func Write(w http.ResponseWriter, r *http.Request, status int, errMsg string, err error) {
	logError(r, status, errMsg, err)
	writeResponse(w, status, Response{Error: errMsg})
}

// WriteStore responds with a 500 carrying the store's diagnostic message and
// SQLSTATE code. Backend detail is deliberately surfaced: the audience for
// these responses is the site operator, not end users.
func WriteStore(w http.ResponseWriter, r *http.Request, errMsg string, err error) {
	resp := Response{Error: errMsg}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		resp.Message = pgErr.Message
		resp.Code = pgErr.Code
	} else if err != nil {
		resp.Message = err.Error()
	}

	logError(r, http.StatusInternalServerError, errMsg, err)
	writeResponse(w, http.StatusInternalServerError, resp)
}

func logError(r *http.Request, status int, title string, err error) {
	if err == nil || r == nil {
		return
	}
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if status >= 500 {
		event = logger.Error()
	}
	event.
		Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Msg(title)
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		fallback := fmt.Sprintf("{\"error\":%q}", http.StatusText(http.StatusInternalServerError))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
