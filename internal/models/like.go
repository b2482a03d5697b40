package models

import "time"

// PostLike is one membership row of a post's like set. The composite primary key
// makes (user, post) unique in the store.
type PostLike struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
