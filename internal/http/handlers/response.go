// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints. Success
// bodies are single-key envelopes written with ok()/created()/noContent().
// Failures go through forward(), which records the error on the Gin context
// and stops the chain; the error classifier middleware owns the status code
// and the body.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{ "msg": "Article not found" }
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "topics": [ { "slug": "mitch", "description": "The man, the Mitch, the legend" } ] }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope produced by the classifier for every
// failure. It is declared here so the Swagger annotations can reference it.
type ErrorResponse struct {
	// Human-readable message, never internal detail
	Msg string `json:"msg" example:"Article not found"`
}

// forward hands err to the error classifier and aborts the remaining
// handlers. Nothing is written to the response here.
func forward(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Forward is the exported variant of forward().
//
// Router-level fallbacks use it so that every failure is classified in one
// place.
func Forward(c *gin.Context, err error) { forward(c, err) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// created writes a 201 JSON response.
func created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
