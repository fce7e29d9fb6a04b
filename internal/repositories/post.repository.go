package repositories

import (
	"fmt"

	"gamestore/internal/database"
	. "gamestore/internal/models"
)

type PostRepository interface {
	NextID() int
	Create(post *Post) error
	GetAll() []*Post
	GetByAuthor(authorID string) []*Post
}

type postRepository struct {
	store *database.Store
}

func NewPostRepository(db database.DB) PostRepository {
	return &postRepository{store: db.Store}
}

func (r *postRepository) NextID() int {
	return r.store.Posts.NextID()
}

func (r *postRepository) Create(post *Post) error {
	if err := r.store.Posts.Insert(post.ID, post); err != nil {
		return fmt.Errorf("%w: post %d already exists", ErrConflict, post.ID)
	}
	return nil
}

func (r *postRepository) GetAll() []*Post {
	return r.store.Posts.All()
}

func (r *postRepository) GetByAuthor(authorID string) []*Post {
	return r.store.Posts.Filter(func(p *Post) bool { return p.AuthorID == authorID })
}
