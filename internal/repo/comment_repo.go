// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for comments.
//
// Existence of the parent article is not checked here: listing returns an
// empty slice for unknown articles (callers pair it with GetArticleByID),
// and inserts rely on the store's foreign keys.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
)

// ListCommentsForArticle returns the article's comments ordered by
// created_at descending. An article with no comments yields an empty slice.
func ListCommentsForArticle(ctx context.Context, db *gorm.DB, articleID string) ([]domain.Comment, error) {
	aid, err := idParam("article_id", articleID)
	if err != nil {
		return nil, err
	}
	out := []domain.Comment{}
	err = db.WithContext(ctx).
		Where("article_id = ?", aid).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return out, nil
}

// InsertComment adds a comment to an article. votes and created_at take the
// store defaults. nil author or body bind as NULL and fail the not-null
// constraint; an unknown article or author fails the foreign key.
//
// On success it returns the persisted comment including its identity.
func InsertComment(ctx context.Context, db *gorm.DB, articleID string, author, body *string) (*domain.Comment, error) {
	aid, err := idParam("article_id", articleID)
	if err != nil {
		return nil, err
	}

	var id int64
	err = db.WithContext(ctx).
		Raw(`INSERT INTO comments (article_id, author, body) VALUES (?, ?, ?) RETURNING comment_id`, aid, author, body).
		Scan(&id).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	var c domain.Comment
	if err := db.WithContext(ctx).Where("comment_id = ?", id).First(&c).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &c, nil
}

// DeleteComment removes a comment by identity. When nothing was deleted it
// returns 400 "Bad Request", which is what existing clients expect for an
// unknown comment id.
func DeleteComment(ctx context.Context, db *gorm.DB, commentID string) error {
	cid, err := idParam("comment_id", commentID)
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).
		Where("comment_id = ?", cid).
		Delete(&domain.Comment{})
	if res.Error != nil {
		return apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.BadRequest()
	}
	return nil
}
