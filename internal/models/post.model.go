package models

import (
	"fmt"
	"strings"
	"time"
)

type Post struct {
	BaseModel
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
}

func NewPost(id int, authorID, content string) (*Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: post content is required", ErrInvalidArgument)
	}

	return &Post{
		BaseModel: BaseModel{ID: id, CreatedAt: time.Now()},
		AuthorID:  authorID,
		Content:   content,
	}, nil
}

func (p *Post) Clone() *Post {
	clone := *p
	return &clone
}
