package models

import "time"

// Comment represents a comment on a post. Comments are created and deleted, never edited.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
	ReplyTo *uint  `json:"reply_to,omitempty"`
}
