package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
)

// ListTopics returns every topic in insertion order.
func ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error) {
	out := []domain.Topic{}
	if err := db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return out, nil
}
