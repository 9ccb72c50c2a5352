package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/google/uuid"
)

type PostInput struct {
	Title   string
	Content string
	Author  string
}

type BlogUsecase struct {
	store
	repo repository.BlogRepository
}

func NewBlogUsecase(repo repository.BlogRepository, opts Options) *BlogUsecase {
	return &BlogUsecase{store: store{opts: opts.withDefaults()}, repo: repo}
}

// List returns posts newest first.
func (u *BlogUsecase) List(ctx context.Context) ([]model.BlogPost, error) {
	return u.repo.GetAll(ctx)
}

func (u *BlogUsecase) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	p, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

func (u *BlogUsecase) Add(ctx context.Context, who model.Identity, in PostInput) (*model.BlogPost, error) {
	done := u.begin()
	defer done()

	p := &model.BlogPost{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Author:      strings.TrimSpace(in.Author),
		AuthorEmail: who.Email,
		CreatedAt:   u.now(),
	}
	if p.Author == "" {
		p.Author = who.Email
	}
	if p.Title == "" || p.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// Update edits title and content. Only the author or an admin may do so.
func (u *BlogUsecase) Update(ctx context.Context, who model.Identity, id string, in PostInput) (*model.BlogPost, error) {
	done := u.begin()
	defer done()

	if err := u.settle(ctx); err != nil {
		return nil, err
	}
	p, err := u.editable(ctx, who, id)
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		p.Title = t
	}
	if c := strings.TrimSpace(in.Content); c != "" {
		p.Content = c
	}
	if a := strings.TrimSpace(in.Author); a != "" {
		p.Author = a
	}
	now := u.now()
	p.UpdatedAt = &now

	if err := u.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (u *BlogUsecase) Delete(ctx context.Context, who model.Identity, id string) error {
	done := u.begin()
	defer done()

	if err := u.settle(ctx); err != nil {
		return err
	}
	if _, err := u.editable(ctx, who, id); err != nil {
		return err
	}
	err := u.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (u *BlogUsecase) editable(ctx context.Context, who model.Identity, id string) (*model.BlogPost, error) {
	p, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.IsAdmin() && !strings.EqualFold(p.AuthorEmail, who.Email) {
		return nil, ErrForbidden
	}
	return p, nil
}
