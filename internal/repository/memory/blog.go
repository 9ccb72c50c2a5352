package memory

import (
	"context"
	"sort"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"
)

type blogRepository struct {
	*store
	posts []model.BlogPost
}

func (r *blogRepository) GetAll(_ context.Context) ([]model.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := append([]model.BlogPost(nil), r.posts...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *blogRepository) GetByID(_ context.Context, id string) (*model.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		p := r.posts[i]
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *blogRepository) Create(_ context.Context, post *model.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(post.ID) >= 0 {
		return repository.ErrDuplicate
	}
	r.posts = append(r.posts, *post)
	return nil
}

func (r *blogRepository) Update(_ context.Context, post *model.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(post.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.posts[i] = *post
	return nil
}

func (r *blogRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	return nil
}

func (r *blogRepository) index(id string) int {
	for i := range r.posts {
		if r.posts[i].ID == id {
			return i
		}
	}
	return -1
}
