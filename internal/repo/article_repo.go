// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for articles.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: one statement per operation plus the
// mapping from raw results to domain failures.
//
// Error semantics:
//   - Zero rows on an existence lookup yield an *apperr.BusinessError.
//   - Store rejections (bad parameter shape, constraint violations) yield an
//     *apperr.StoreError carrying the SQLSTATE code.
//   - Anything else (connectivity, programming defects) is returned as is.
//
// Functions:
//
//   - ListArticles(ctx, db) -> []domain.ArticleSummary, error
//     All articles, newest first, with comment_count aggregated at read time.
//
//   - GetArticleByID(ctx, db, id) -> *domain.Article, error
//     A single article, or 404 "Article not found".
//
//   - IncrementArticleVotes(ctx, db, id, incVotes) -> *domain.Article, error
//     votes = votes + incVotes as a single UPDATE, then the updated row,
//     or 404 "Path not found" when no article matched.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
)

// ListArticles returns all articles ordered by created_at descending. The
// body is omitted and comment_count counts the article's comments (0 when
// it has none).
func ListArticles(ctx context.Context, db *gorm.DB) ([]domain.ArticleSummary, error) {
	out := []domain.ArticleSummary{}
	err := db.WithContext(ctx).
		Table("articles").
		Select(`articles.article_id, articles.author, articles.title, articles.topic,
			articles.created_at, articles.votes, articles.article_img_url,
			COUNT(comments.comment_id) AS comment_count`).
		Joins("LEFT JOIN comments ON comments.article_id = articles.article_id").
		Group("articles.article_id").
		Order("articles.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return out, nil
}

// GetArticleByID fetches one article. The id is bound as an integer; a
// non-numeric id is rejected by the store binding, not here.
func GetArticleByID(ctx context.Context, db *gorm.DB, id string) (*domain.Article, error) {
	aid, err := idParam("article_id", id)
	if err != nil {
		return nil, err
	}
	var a domain.Article
	err = db.WithContext(ctx).
		Where("article_id = ?", aid).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ArticleNotFound()
	}
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return &a, nil
}

// IncrementArticleVotes adds incVotes to the article's votes with a single
// atomic UPDATE and returns the article as read back afterwards. incVotes is
// the decoded JSON value; a nil value reaches the store as NULL and fails
// the not-null constraint.
func IncrementArticleVotes(ctx context.Context, db *gorm.DB, id string, incVotes any) (*domain.Article, error) {
	aid, err := idParam("article_id", id)
	if err != nil {
		return nil, err
	}
	delta, err := intParam("inc_votes", incVotes)
	if err != nil {
		return nil, err
	}

	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", aid).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if res.Error != nil {
		return nil, apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.PathNotFound()
	}

	var a domain.Article
	if err := db.WithContext(ctx).Where("article_id = ?", aid).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.PathNotFound()
		}
		return nil, apperr.FromStore(err)
	}
	return &a, nil
}
