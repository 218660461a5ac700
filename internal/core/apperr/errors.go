// Package apperr defines the error taxonomy shared by the client:
// client-side validation, backend (transport/auth) failures and upload rejections.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrNotAuthenticated  = errors.New("sessão não iniciada")
	ErrNotFound          = errors.New("registo não encontrado")
	ErrNoSelection       = errors.New("nenhum registo selecionado")
	ErrInvalidTransition = errors.New("operação inválida no estado atual")

	// ErrReloadFailed marks a mutation the backend accepted whose list
	// re-fetch then failed.
	ErrReloadFailed = errors.New("alteração guardada mas a lista não foi atualizada")
)

// ValidationError blocks a submission before any request is made.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a problem for field.
func (e *ValidationError) Add(field, problem string) {
	e.Fields[field] = append(e.Fields[field], problem)
}

// Empty reports whether no problem was recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Error lists the problems sorted by field name so messages are stable.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "dados inválidos: " + strings.Join(parts, ", ")
}

// APIError is a non-2xx backend response.
// Detail carries the backend's own message when it sent one.
type APIError struct {
	Status int
	Detail string
	Method string
	Path   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unwrap maps well-known statuses onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrNotAuthenticated
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// UploadRejected is a local refusal to upload a file; no request was made.
type UploadRejected struct {
	Reason string
}

func (e *UploadRejected) Error() string {
	return e.Reason
}

// UploadFailed is an upload the backend did not accept. Fallback is the
// message shown when the backend sent no detail.
type UploadFailed struct {
	Fallback string
	Err      error
}

func (e *UploadFailed) Error() string {
	return e.Err.Error()
}

func (e *UploadFailed) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user for err: the backend detail
// when present, then the upload's own fallback, then fallback for backend
// failures. Anything else, or an empty fallback, shows err itself.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	var upErr *UploadFailed
	if errors.As(err, &upErr) && upErr.Fallback != "" {
		return upErr.Fallback
	}

	if apiErr != nil && fallback != "" {
		return fallback
	}
	return err.Error()
}
