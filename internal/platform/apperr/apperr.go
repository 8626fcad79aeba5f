// Package apperr define la taxonomía de errores de la API y su traducción a HTTP.
// Formato de respuesta: {"error": {"code": "...", "message": "..."}}.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind es el código estable (machine-checkable) de un error.
type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindForbidden            Kind = "FORBIDDEN"
	KindUnauthenticated      Kind = "UNAUTHENTICATED"
	KindValidation           Kind = "VALIDATION_ERROR"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
	KindDuplicateApplication Kind = "DUPLICATE_APPLICATION"
	KindUnavailable          Kind = "UNAVAILABLE"
	KindSlotConflict         Kind = "SLOT_CONFLICT"
	KindRateLimited          Kind = "RATE_LIMITED"
	KindInternal             Kind = "INTERNAL"
)

// Error es un error tipado. Los paquetes de dominio declaran sus sentinels con New.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap conserva la causa para logs sin exponerla al cliente.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf devuelve el Kind del primer *Error en la cadena; KindInternal si no hay.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status traduce un Kind a código HTTP.
func Status(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindValidation, KindInvalidTransition, KindDuplicateApplication, KindUnavailable, KindSlotConflict:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    Kind   `json:"code"`
	Message string `json:"message"`
}

// errorRecorder lo implementa el ResponseWriter del access log,
// para que el error real quede en el log aunque no salga al cliente.
type errorRecorder interface {
	RecordError(err error)
}

// Write escribe err en el formato estándar.
// Los errores internos nunca exponen detalle de storage: solo "internal error".
func Write(w http.ResponseWriter, err error) {
	kind := KindOf(err)

	msg := "internal error"
	if kind != KindInternal {
		msg = err.Error()
	}

	if rec, ok := w.(errorRecorder); ok {
		rec.RecordError(err)
	}

	WriteKind(w, kind, msg)
}

// WriteKind escribe un error sin pasar por un valor error (p.ej. 401 en handlers).
func WriteKind(w http.ResponseWriter, kind Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(kind))
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    kind,
			Message: message,
		},
	})
}

// Unauthenticated es el atajo más usado por los handlers.
func Unauthenticated(w http.ResponseWriter) {
	WriteKind(w, KindUnauthenticated, "authentication required")
}
