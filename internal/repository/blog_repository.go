package repository

import (
	"context"

	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type BlogRepository interface {
	GetAll(ctx context.Context) ([]model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	Create(ctx context.Context, post *model.BlogPost) error
	Update(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id string) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db}
}

func (r *blogRepository) GetAll(ctx context.Context) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&posts).Error
	return posts, translate(err)
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *blogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	return translate(r.db.WithContext(ctx).Create(post).Error)
}

func (r *blogRepository) Update(ctx context.Context, post *model.BlogPost) error {
	return updateByID(r.db.WithContext(ctx), post, post.ID, "created_at")
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.BlogPost{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
