package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like-membership operations. Add and
// Remove are set operations: they report whether the set actually changed.
type LikeRepository interface {
	Add(ctx context.Context, userID, postID uint) (bool, error)
	Remove(ctx context.Context, userID, postID uint) (bool, error)
	HasUserLikedPost(ctx context.Context, userID, postID uint) (bool, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint) (int64, error)
}

type gormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a LikeRepository over db
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &gormLikeRepository{db: db}
}

// Add inserts the (user, post) row unless it is already present
func (r *gormLikeRepository) Add(ctx context.Context, userID, postID uint) (bool, error) {
	like := &models.PostLike{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return false, translateWrite(res.Error, "like")
	}
	return res.RowsAffected > 0, nil
}

// Remove deletes the (user, post) row if present
func (r *gormLikeRepository) Remove(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormLikeRepository) HasUserLikedPost(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *gormLikeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *gormLikeRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormLikeRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PostLike{})
	return res.RowsAffected, res.Error
}

func (r *gormLikeRepository) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostLike{})
	return res.RowsAffected, res.Error
}
