package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for follow data operations. Followers
// and following are two query directions over the one subscriptions table.
type SubscriptionRepository interface {
	EntityRepository[models.Subscription]
	IsFollowing(ctx context.Context, subscriberID, targetID uint) (bool, error)
	DeletePair(ctx context.Context, subscriberID, targetID uint) (int64, error)
	DeleteInvolving(ctx context.Context, userID uint) (int64, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

type gormSubscriptionRepository struct {
	crud[models.Subscription]
}

// NewSubscriptionRepository creates a SubscriptionRepository over db
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &gormSubscriptionRepository{crud[models.Subscription]{db: db, entity: "subscription"}}
}

func (r *gormSubscriptionRepository) IsFollowing(ctx context.Context, subscriberID, targetID uint) (bool, error) {
	return r.Exists(ctx, Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberID, targetID))
}

func (r *gormSubscriptionRepository) DeletePair(ctx context.Context, subscriberID, targetID uint) (int64, error) {
	return r.DeleteWhere(ctx, Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberID, targetID))
}

// DeleteInvolving removes every edge in either direction
func (r *gormSubscriptionRepository) DeleteInvolving(ctx context.Context, userID uint) (int64, error) {
	return r.DeleteWhere(ctx, Where("subscriber_id = ? OR subscribed_to_id = ?", userID, userID))
}

func (r *gormSubscriptionRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.conn(ctx).Where("id IN (?)",
		r.db.Model(&models.Subscription{}).Select("subscriber_id").Where("subscribed_to_id = ?", userID),
	).Order("username").Find(&users).Error
	return users, err
}

func (r *gormSubscriptionRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.conn(ctx).Where("id IN (?)",
		r.db.Model(&models.Subscription{}).Select("subscribed_to_id").Where("subscriber_id = ?", userID),
	).Order("username").Find(&users).Error
	return users, err
}

func (r *gormSubscriptionRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	return r.Count(ctx, Where("subscribed_to_id = ?", userID))
}

func (r *gormSubscriptionRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	return r.Count(ctx, Where("subscriber_id = ?", userID))
}

func (r *gormSubscriptionRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.conn(ctx).Model(&models.Subscription{}).Where("subscriber_id = ?", userID).Pluck("subscribed_to_id", &ids).Error
	return ids, err
}
