package models

import "time"

type NotificationType string

const (
	NotificationNewFollower  NotificationType = "NEW_FOLLOWER"
	NotificationPostLike     NotificationType = "POST_LIKE"
	NotificationPostComment  NotificationType = "POST_COMMENT"
	NotificationCommentReply NotificationType = "COMMENT_REPLY"
	NotificationMention      NotificationType = "MENTION"
)

// Notification represents a user notification
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index"`
	Recipient   *User            `json:"-" gorm:"foreignKey:RecipientID"`
	ActorID     *uint            `json:"actor_id,omitempty" gorm:"index"`
	Actor       *User            `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
	PostID      *uint            `json:"post_id,omitempty" gorm:"index"`
	Post        *Post            `json:"-" gorm:"foreignKey:PostID"`
	CommentID   *uint            `json:"comment_id,omitempty" gorm:"index"`
	Comment     *Comment         `json:"-" gorm:"foreignKey:CommentID"`
	Type        NotificationType `json:"type" gorm:"size:30;not null;index"`
	Message     string           `json:"message" gorm:"type:text"`
	IsRead      bool             `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index;autoCreateTime;<-:create"`
}
