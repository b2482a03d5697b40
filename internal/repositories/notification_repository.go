package repositories

import (
	"context"
	"time"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	EntityRepository[models.Notification]
	GetByRecipientID(ctx context.Context, recipientID uint, page, size int) (*Page[models.Notification], error)
	GetGrouped(ctx context.Context, recipientID uint, now time.Time) (*GroupedNotifications, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, recipientID uint) (int64, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
	DeleteInvolvingUser(ctx context.Context, userID uint) (int64, error)
	DeleteForPost(ctx context.Context, postID uint) (int64, error)
}

// GroupedNotifications buckets a recipient's notifications by age.
type GroupedNotifications struct {
	Today     []models.Notification `json:"today"`
	Yesterday []models.Notification `json:"yesterday"`
	ThisWeek  []models.Notification `json:"thisWeek"`
	Older     []models.Notification `json:"older"`
}

const olderNotificationsLimit = 50

type gormNotificationRepository struct {
	crud[models.Notification]
}

// NewNotificationRepository creates a NotificationRepository over db
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{crud[models.Notification]{db: db, entity: "notification"}}
}

func orderNewestFirst(q *gorm.DB) *gorm.DB {
	return q.Preload("Actor").Order("created_at DESC").Order("id DESC")
}

func (r *gormNotificationRepository) newestFirst(ctx context.Context) *gorm.DB {
	return orderNewestFirst(r.conn(ctx))
}

func (r *gormNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, page, size int) (*Page[models.Notification], error) {
	q := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	return Paginate[models.Notification](ctx, q, page, size, orderNewestFirst)
}

func (r *gormNotificationRepository) GetGrouped(ctx context.Context, recipientID uint, now time.Time) (*GroupedNotifications, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	g := &GroupedNotifications{}

	// Today
	if err := r.newestFirst(ctx).Where("recipient_id = ? AND created_at >= ?", recipientID, todayStart).
		Find(&g.Today).Error; err != nil {
		return nil, err
	}

	// Yesterday
	if err := r.newestFirst(ctx).Where("recipient_id = ? AND created_at >= ? AND created_at < ?", recipientID, yesterdayStart, todayStart).
		Find(&g.Yesterday).Error; err != nil {
		return nil, err
	}

	// This week (excluding today and yesterday)
	if err := r.newestFirst(ctx).Where("recipient_id = ? AND created_at >= ? AND created_at < ?", recipientID, weekStart, yesterdayStart).
		Find(&g.ThisWeek).Error; err != nil {
		return nil, err
	}

	// Older
	if err := r.newestFirst(ctx).Where("recipient_id = ? AND created_at < ?", recipientID, weekStart).
		Limit(olderNotificationsLimit).Find(&g.Older).Error; err != nil {
		return nil, err
	}

	return g, nil
}

func (r *gormNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return r.Count(ctx, Where("recipient_id = ? AND is_read = ?", recipientID, false))
}

// MarkAsRead only touches the notification when it belongs to recipientID. It
// returns the number of matching rows, 0 meaning not found for this recipient.
func (r *gormNotificationRepository) MarkAsRead(ctx context.Context, notificationID, recipientID uint) (int64, error) {
	owned, err := r.Exists(ctx, Where("id = ? AND recipient_id = ?", notificationID, recipientID))
	if err != nil || !owned {
		return 0, err
	}
	err = r.conn(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
	return 1, err
}

func (r *gormNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.conn(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// DeleteInvolvingUser removes notifications the user receives or caused, and those
// pointing at one of the user's comments.
func (r *gormNotificationRepository) DeleteInvolvingUser(ctx context.Context, userID uint) (int64, error) {
	authored := r.db.Model(&models.Comment{}).Select("id").Where("author_id = ?", userID)
	return r.DeleteWhere(ctx, Where("recipient_id = ? OR actor_id = ? OR comment_id IN (?)", userID, userID, authored))
}

// DeleteForPost removes notifications pointing at the post or at one of its comments.
func (r *gormNotificationRepository) DeleteForPost(ctx context.Context, postID uint) (int64, error) {
	comments := r.db.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
	return r.DeleteWhere(ctx, Where("post_id = ? OR comment_id IN (?)", postID, comments))
}
