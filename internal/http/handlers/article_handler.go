// Article HTTP handlers.
//
// This file exposes REST endpoints for articles:
//   - GET   /api/articles               (list, newest first, with comment_count)
//   - GET   /api/articles/{article_id}  (single article)
//   - PATCH /api/articles/{article_id}  (increment votes)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/domain"
)

//
// DTOs
//

// PatchArticleRequest is the JSON payload for a vote increment.
//
// IncVotes is kept as the decoded JSON value. Non-integers are rejected by
// the repository's parameter binding, and an absent field binds as NULL.
type PatchArticleRequest struct {
	IncVotes any `json:"inc_votes" swaggertype:"integer" example:"1"`
}

// ArticlesResponse wraps the article list.
type ArticlesResponse struct {
	Articles []domain.ArticleSummary `json:"articles"`
}

// ArticleResponse wraps a single article.
type ArticleResponse struct {
	Article *domain.Article `json:"article"`
}

//
// Handlers
//

// ListArticles godoc
// @ID          listArticles
// @Summary     List articles
// @Description All articles ordered by created_at descending, without body, with comment_count.
// @Tags        Articles
// @Produce     json
// @Success     200  {object}  handlers.ArticlesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Server Error"
// @Router      /articles [get]
func (h *Handlers) ListArticles(c *gin.Context) {
	list, err := h.repo.ListArticles(c.Request.Context())
	if err != nil {
		forward(c, err)
		return
	}
	ok(c, http.StatusOK, ArticlesResponse{Articles: list})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     Get an article
// @Tags        Articles
// @Produce     json
// @Param       article_id  path  integer  true  "Article ID"
// @Success     200  {object}  handlers.ArticleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	a, err := h.repo.GetArticleByID(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		forward(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: a})
}

// PatchArticle godoc
// @ID          patchArticle
// @Summary     Increment article votes
// @Description Adds inc_votes (may be negative) to the article's votes atomically.
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Param       article_id  path  integer                       true  "Article ID"
// @Param       body        body  handlers.PatchArticleRequest  true  "Vote delta"
// @Success     200  {object}  handlers.ArticleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request"
// @Failure     404  {object}  handlers.ErrorResponse  "Path not found"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) PatchArticle(c *gin.Context) {
	var req PatchArticleRequest
	if err := bindBody(c, &req); err != nil {
		forward(c, err)
		return
	}
	a, err := h.repo.IncrementArticleVotes(c.Request.Context(), c.Param("article_id"), req.IncVotes)
	if err != nil {
		forward(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: a})
}
