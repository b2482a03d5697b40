package models

import "time"

// Post is owned by exactly one author. Comments and Likes are loaded on the read
// path only; deleting a post deletes them explicitly, see services.RelationshipManager.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Hidden    bool      `json:"hidden" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []Comment  `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Likes    []PostLike `json:"likes,omitempty" gorm:"foreignKey:PostID"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// SetHiddenRequest toggles the soft visibility switch of a post.
type SetHiddenRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}
