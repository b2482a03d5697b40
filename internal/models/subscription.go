package models

import "time"

// Subscription is a directed follow edge. Followers and following are both read
// from this one table.
type Subscription struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SubscriberID   uint      `json:"subscriber_id" gorm:"not null;index;uniqueIndex:idx_subscriber_subscribed_to"`
	SubscribedToID uint      `json:"subscribed_to_id" gorm:"not null;index;uniqueIndex:idx_subscriber_subscribed_to"`
	Subscriber     *User     `json:"-" gorm:"foreignKey:SubscriberID"`
	SubscribedTo   *User     `json:"-" gorm:"foreignKey:SubscribedToID"`
	CreatedAt      time.Time `json:"created_at"`
}
