// News HTTP handlers.
//
// This file exposes the handler wiring and the API root:
//   - GET  /api   (liveness message)
//
// Handlers are transport-thin: they pull identifiers from the path and fields
// from the body, call the Repository, and wrap the result in a single-key
// envelope. Failures are never translated here; they are forwarded unchanged
// to the error classifier middleware.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
)

//
// Repository contract (context-aware)
//

// Repository is the data access surface consumed by the handlers.
//
// Identifiers are passed through as raw path text; the implementation binds
// them the way the store casts parameters. Implementations must be safe for
// concurrent use and must honor the provided context.
type Repository interface {
	ListTopics(ctx context.Context) ([]domain.Topic, error)
	ListArticles(ctx context.Context) ([]domain.ArticleSummary, error)
	GetArticleByID(ctx context.Context, id string) (*domain.Article, error)
	IncrementArticleVotes(ctx context.Context, id string, incVotes any) (*domain.Article, error)
	ListCommentsForArticle(ctx context.Context, articleID string) ([]domain.Comment, error)
	InsertComment(ctx context.Context, articleID string, author, body *string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the news API.
type Handlers struct {
	repo Repository
}

// New constructs a Handlers instance bound to repo.
func New(repo Repository) *Handlers {
	return &Handlers{repo: repo}
}

// MessageResponse is the envelope for plain status messages.
type MessageResponse struct {
	Msg string `json:"msg" example:"server is up and running"`
}

// Root godoc
// @ID          getRoot
// @Summary     API liveness
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  handlers.MessageResponse
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, MessageResponse{Msg: "server is up and running"})
}

// RouteMiss forwards a route-miss failure for any unmatched method and path.
func RouteMiss(c *gin.Context) {
	forward(c, apperr.NoRoute())
}
