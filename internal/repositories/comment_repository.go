package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	EntityRepository[models.Comment]
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	DeleteByAuthor(ctx context.Context, authorID uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint) (int64, error)
}

type gormCommentRepository struct {
	crud[models.Comment]
}

// NewCommentRepository creates a CommentRepository over db
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{crud[models.Comment]{db: db, entity: "comment"}}
}

// ListByPost retrieves all comments for a post, oldest first
func (r *gormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.conn(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *gormCommentRepository) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.DeleteWhere(ctx, Where("author_id = ?", authorID))
}

func (r *gormCommentRepository) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	return r.DeleteWhere(ctx, Where("post_id = ?", postID))
}
