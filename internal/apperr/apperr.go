// Package apperr defines the failure taxonomy shared by the repository layer
// and the HTTP error classifier.
//
// A failure is exactly one of two variants:
//   - *BusinessError: raised deliberately by repository code after an explicit
//     check (e.g. zero rows on an existence lookup). It carries the outward
//     status and message.
//   - *StoreError: raised by the relational store itself. It carries a
//     SQLSTATE-style vendor code and never an HTTP status.
//
// Anything else is Unclassified. Translation into HTTP responses happens only
// in the error classifier middleware.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// SQLSTATE codes the classifier knows about. SQLite failures are normalized
// onto the same codes by FromStore.
const (
	CodeInvalidTextRepresentation = "22P02"
	CodeNotNullViolation          = "23502"
	CodeForeignKeyViolation       = "23503"
	CodeUniqueViolation           = "23505"
)

// BusinessError is a rejection chosen by application code. Kind, when set,
// overrides the status-derived Class.
type BusinessError struct {
	Status int
	Msg    string
	Kind   Class
}

func (e *BusinessError) Error() string { return fmt.Sprintf("%d: %s", e.Status, e.Msg) }

// StoreError is a rejection reported by the relational store.
type StoreError struct {
	Code string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return "store error " + e.Code
	}
	return "store error " + e.Code + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// ArticleNotFound is returned when an article lookup matches no rows.
func ArticleNotFound() error {
	return &BusinessError{Status: http.StatusNotFound, Msg: "Article not found"}
}

// PathNotFound is the vote increment's missing-article failure. It shares
// the route-miss message but is classed as NotFound.
func PathNotFound() error {
	return &BusinessError{Status: http.StatusNotFound, Msg: "Path not found", Kind: NotFound}
}

// NoRoute is the failure for a request that matched no route.
func NoRoute() error {
	return &BusinessError{Status: http.StatusNotFound, Msg: "Path not found", Kind: RouteMiss}
}

// BadRequest is a generic malformed-request rejection.
func BadRequest() error {
	return &BusinessError{Status: http.StatusBadRequest, Msg: "Bad Request"}
}

// InvalidInput reports a parameter the store would refuse to cast.
func InvalidInput(param string, v any) error {
	return &StoreError{
		Code: CodeInvalidTextRepresentation,
		Err:  fmt.Errorf("invalid input syntax for type integer: %q (%s)", fmt.Sprint(v), param),
	}
}

// Class names a taxonomy bucket.
type Class string

const (
	NotFound             Class = "not_found"
	MalformedInput       Class = "malformed_input"
	ReferentialViolation Class = "referential_violation"
	RouteMiss            Class = "route_miss"
	Unclassified         Class = "unclassified"
)

// ClassOf reports the taxonomy bucket of err. It is used for metrics and
// logging; the HTTP mapping lives in the classifier rules.
func ClassOf(err error) Class {
	var be *BusinessError
	if errors.As(err, &be) {
		switch {
		case be.Kind != "":
			return be.Kind
		case be.Status == http.StatusNotFound:
			return NotFound
		case be.Status == http.StatusBadRequest:
			return MalformedInput
		}
		return Unclassified
	}
	var se *StoreError
	if errors.As(err, &se) {
		switch se.Code {
		case CodeInvalidTextRepresentation, CodeNotNullViolation:
			return MalformedInput
		case CodeForeignKeyViolation:
			return ReferentialViolation
		}
	}
	return Unclassified
}
