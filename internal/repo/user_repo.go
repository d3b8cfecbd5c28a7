package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
)

// ListUsers returns every user in insertion order.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	if err := db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return out, nil
}
