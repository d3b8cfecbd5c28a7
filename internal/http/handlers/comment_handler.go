// Comment HTTP handlers.
//
// This file exposes REST endpoints for comments:
//   - GET    /api/articles/{article_id}/comments  (list, newest first)
//   - POST   /api/articles/{article_id}/comments  (create)
//   - DELETE /api/comments/{comment_id}           (remove)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/tbourn/go-news-api/internal/domain"
)

var tracer = otel.Tracer("github.com/tbourn/go-news-api/internal/http/handlers")

//
// DTOs
//

// PostCommentRequest is the JSON payload for a new comment. Absent fields
// stay nil and are rejected by the store's not-null constraints.
type PostCommentRequest struct {
	Username *string `json:"username" example:"butter_bridge"`
	Body     *string `json:"body"     example:"This morning, I showered for nine minutes."`
}

// CommentsResponse wraps a list of comments.
type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

// CommentResponse wraps a single comment.
type CommentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

//
// Handlers
//

// ListComments godoc
// @ID          listComments
// @Summary     List an article's comments
// @Description Comments ordered by created_at descending. An existing article with no comments yields an empty list.
// @Tags        Comments
// @Produce     json
// @Param       article_id  path  integer  true  "Article ID"
// @Success     200  {object}  handlers.CommentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Router      /articles/{article_id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	id := c.Param("article_id")
	ctx, span := tracer.Start(c.Request.Context(), "ListComments",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("article_id", id)),
	)
	defer span.End()

	// The comment list alone cannot tell an unknown article from one with
	// no comments, so the article lookup runs alongside it.
	var comments []domain.Comment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = h.repo.ListCommentsForArticle(gctx, id)
		return err
	})
	g.Go(func() error {
		_, err := h.repo.GetArticleByID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		forward(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: comments})
}

// PostComment godoc
// @ID          postComment
// @Summary     Add a comment to an article
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       article_id  path  integer                      true  "Article ID"
// @Param       body        body  handlers.PostCommentRequest  true  "Comment payload"
// @Success     201  {object}  handlers.CommentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request"
// @Failure     404  {object}  handlers.ErrorResponse  "404 not found"
// @Router      /articles/{article_id}/comments [post]
func (h *Handlers) PostComment(c *gin.Context) {
	var req PostCommentRequest
	if err := bindBody(c, &req); err != nil {
		forward(c, err)
		return
	}
	cm, err := h.repo.InsertComment(c.Request.Context(), c.Param("article_id"), req.Username, req.Body)
	if err != nil {
		forward(c, err)
		return
	}
	created(c, CommentResponse{Comment: cm})
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Tags        Comments
// @Param       comment_id  path  integer  true  "Comment ID"
// @Success     204  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request"
// @Router      /comments/{comment_id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	if err := h.repo.DeleteComment(c.Request.Context(), c.Param("comment_id")); err != nil {
		forward(c, err)
		return
	}
	noContent(c)
}
