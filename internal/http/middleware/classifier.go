// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the error classifier: the single place where a failure
// recorded by a handler (via c.Error) becomes an HTTP status and a {"msg"}
// body. Classification is an ordered list of rules; the first rule that
// recognizes the failure decides the response.
//
// Default chain:
//  1. BusinessRule:  *apperr.BusinessError, its own status and message
//  2. StoreRule:     *apperr.StoreError by SQLSTATE
//     22P02, 23502 -> 400 "Bad Request"
//     23503        -> 404 "404 not found"
//  3. FallbackRule:  anything else -> 500 "Server Error"
//
// Internal detail (driver messages, SQL) never reaches the response body.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/apperr"
)

// ErrorRule inspects a failure and reports whether it recognizes it. When it
// does, status and msg define the response.
type ErrorRule func(err error) (status int, msg string, matched bool)

// BusinessRule passes business failures through with their own status and
// message.
func BusinessRule(err error) (int, string, bool) {
	var be *apperr.BusinessError
	if errors.As(err, &be) {
		return be.Status, be.Msg, true
	}
	return 0, "", false
}

// storeStatus maps SQLSTATE codes to responses. Codes not listed fall
// through to the next rule.
var storeStatus = map[string]struct {
	status int
	msg    string
}{
	apperr.CodeInvalidTextRepresentation: {http.StatusBadRequest, "Bad Request"},
	apperr.CodeNotNullViolation:          {http.StatusBadRequest, "Bad Request"},
	apperr.CodeForeignKeyViolation:       {http.StatusNotFound, "404 not found"},
}

// StoreRule maps the store error codes clients can cause by sending bad
// input.
func StoreRule(err error) (int, string, bool) {
	var se *apperr.StoreError
	if !errors.As(err, &se) {
		return 0, "", false
	}
	if m, ok := storeStatus[se.Code]; ok {
		return m.status, m.msg, true
	}
	return 0, "", false
}

// FallbackRule matches everything.
func FallbackRule(error) (int, string, bool) {
	return http.StatusInternalServerError, "Server Error", true
}

// DefaultRules returns the standard classification chain.
func DefaultRules() []ErrorRule {
	return []ErrorRule{BusinessRule, StoreRule, FallbackRule}
}

// Classify runs err through rules in order. With no matching rule it
// behaves like FallbackRule.
func Classify(err error, rules ...ErrorRule) (int, string) {
	for _, rule := range rules {
		if status, msg, ok := rule(err); ok {
			return status, msg
		}
	}
	status, msg, _ := FallbackRule(err)
	return status, msg
}

// ErrorClassifier returns a middleware that classifies the last error a
// handler recorded and writes {"msg": ...} with the resulting status. It is
// a no-op when there is no error or a response was already written.
//
// 5xx outcomes are logged with the request-scoped logger including the
// underlying cause. Every classified failure is counted in
// api_errors_total(class, status).
func ErrorClassifier(rules ...ErrorRule) gin.HandlerFunc {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, msg := Classify(err, rules...)

		if status >= http.StatusInternalServerError {
			LoggerFrom(c).Error().
				Err(err).
				Int("status", status).
				Msg("api error")
		}
		ObserveAPIError(apperr.ClassOf(err), status)

		c.AbortWithStatusJSON(status, gin.H{"msg": msg})
	}
}
